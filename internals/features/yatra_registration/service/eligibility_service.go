package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userservice "iysyatra_backend/internals/features/users/profile/service"
	regmodel "iysyatra_backend/internals/features/yatra_registration/model"
	helper "iysyatra_backend/internals/helpers"
)

// EligibilityService maintains the per-yatra approval gate. A profile
// can only be registered for a yatra once its pair row is approved.
type EligibilityService struct {
	DB *gorm.DB
}

func NewEligibilityService(db *gorm.DB) *EligibilityService {
	return &EligibilityService{DB: db}
}

// RequestApproval creates the pending pair row. Only the profile
// itself (or staff) may raise it, the profile must already hold an
// approved mentor, and the pair is frozen once approved or registered.
// Re-requesting a still-pending pair is a no-op returning the row.
func (s *EligibilityService) RequestApproval(yatraID, profileID, actorID uuid.UUID, isStaff bool) (*regmodel.YatraEligibilityModel, error) {
	if !isStaff && profileID != actorID {
		return nil, helper.ErrPermissionDenied("eligibility can only be requested for yourself")
	}

	mentored, err := userservice.HasApprovedMentor(s.DB, profileID)
	if err != nil {
		return nil, err
	}
	if !mentored {
		return nil, helper.ErrPermissionDenied("an approved mentor is required before requesting eligibility")
	}

	var regCount int64
	if err := s.DB.Model(&regmodel.YatraRegistrationModel{}).
		Where("yatra_registration_yatra_id = ? AND yatra_registration_registered_for = ?", yatraID, profileID).
		Count(&regCount).Error; err != nil {
		return nil, err
	}
	if regCount > 0 {
		return nil, helper.ErrInvalidState("profile is already registered for this yatra")
	}

	row := regmodel.YatraEligibilityModel{
		YatraEligibilityYatraID:   yatraID,
		YatraEligibilityProfileID: profileID,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			var existing regmodel.YatraEligibilityModel
			if ferr := s.DB.
				Where("yatra_eligibility_yatra_id = ? AND yatra_eligibility_profile_id = ?", yatraID, profileID).
				First(&existing).Error; ferr != nil {
				return nil, ferr
			}
			if existing.YatraEligibilityIsApproved {
				return nil, helper.ErrInvalidState("eligibility is already approved for this yatra")
			}
			return &existing, nil
		}
		return nil, err
	}
	return &row, nil
}

// Approve flips the gate open. Mentors may approve their own mentees,
// staff may approve anyone, nobody approves themselves.
func (s *EligibilityService) Approve(eligibilityID, actorID uuid.UUID, isStaff bool, now time.Time) (*regmodel.YatraEligibilityModel, error) {
	var row regmodel.YatraEligibilityModel
	if err := s.DB.Where("yatra_eligibility_id = ?", eligibilityID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("eligibility request not found")
		}
		return nil, err
	}

	if row.YatraEligibilityProfileID == actorID {
		return nil, helper.ErrPermissionDenied("cannot approve your own eligibility")
	}
	if !isStaff {
		approved, err := userservice.HasApprovedMentee(s.DB, row.YatraEligibilityProfileID, actorID)
		if err != nil {
			return nil, err
		}
		if !approved {
			return nil, helper.ErrPermissionDenied("only the profile's mentor or staff may approve")
		}
	}

	if row.YatraEligibilityIsApproved {
		return &row, nil
	}

	row.YatraEligibilityIsApproved = true
	row.YatraEligibilityApprovedBy = &actorID
	row.YatraEligibilityApprovedAt = &now
	if err := s.DB.Model(&regmodel.YatraEligibilityModel{}).
		Where("yatra_eligibility_id = ?", eligibilityID).
		Updates(map[string]interface{}{
			"yatra_eligibility_is_approved": true,
			"yatra_eligibility_approved_by": actorID,
			"yatra_eligibility_approved_at": now,
		}).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Unapprove deletes the pair row, closing the gate again. Blocked once
// a registration exists for the pair.
func (s *EligibilityService) Unapprove(eligibilityID, actorID uuid.UUID, isStaff bool) error {
	var row regmodel.YatraEligibilityModel
	if err := s.DB.Where("yatra_eligibility_id = ?", eligibilityID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("eligibility request not found")
		}
		return err
	}

	if !isStaff {
		approved, err := userservice.HasApprovedMentee(s.DB, row.YatraEligibilityProfileID, actorID)
		if err != nil {
			return err
		}
		if !approved {
			return helper.ErrPermissionDenied("only the profile's mentor or staff may unapprove")
		}
	}

	var regCount int64
	if err := s.DB.Model(&regmodel.YatraRegistrationModel{}).
		Where("yatra_registration_yatra_id = ? AND yatra_registration_registered_for = ?",
			row.YatraEligibilityYatraID, row.YatraEligibilityProfileID).
		Count(&regCount).Error; err != nil {
		return err
	}
	if regCount > 0 {
		return helper.ErrInvalidState("profile already has a registration for this yatra")
	}

	return s.DB.Delete(&regmodel.YatraEligibilityModel{}, "yatra_eligibility_id = ?", eligibilityID).Error
}

// IsApproved reports whether the (yatra, profile) gate is open.
func IsApproved(db *gorm.DB, yatraID, profileID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&regmodel.YatraEligibilityModel{}).
		Where("yatra_eligibility_yatra_id = ? AND yatra_eligibility_profile_id = ?", yatraID, profileID).
		Where("yatra_eligibility_is_approved = TRUE").
		Count(&count).Error
	return count > 0, err
}
