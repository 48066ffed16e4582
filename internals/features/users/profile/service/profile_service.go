package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	constants "iysyatra_backend/internals/constants"
	model "iysyatra_backend/internals/features/users/profile/model"
	helper "iysyatra_backend/internals/helpers"
)

// ProfileService owns profile lifecycle: a profile row appears on the
// first authenticated request and gets its member id lazily, in the
// pending bucket, inside the same transaction as the insert.
type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService { return &ProfileService{DB: db} }

// EnsureProfile returns the profile for the acting identity, creating it
// (with a pending-bucket member id) on first sight.
func (s *ProfileService) EnsureProfile(profileID uuid.UUID, now time.Time) (*model.ProfileModel, error) {
	var p model.ProfileModel
	err := s.DB.Where("profile_id = ?", profileID).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		memberID, err := AllocateMemberID(tx, YearCode(now), constants.PendingApprovalCode)
		if err != nil {
			return err
		}
		p = model.ProfileModel{
			ProfileID:       profileID,
			ProfileMemberID: memberID,
			ProfileUserType: constants.UserTypeGuest,
		}
		return tx.Create(&p).Error
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			// lost the race to a concurrent first request; the row exists now
			if err2 := s.DB.Where("profile_id = ?", profileID).First(&p).Error; err2 == nil {
				return &p, nil
			}
		}
		return nil, err
	}
	return &p, nil
}

// GetByMemberID resolves a profile from the human-shared member id.
func (s *ProfileService) GetByMemberID(memberID int) (*model.ProfileModel, error) {
	var p model.ProfileModel
	if err := s.DB.Where("profile_member_id = ?", memberID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("profile not found for member id")
		}
		return nil, err
	}
	return &p, nil
}
