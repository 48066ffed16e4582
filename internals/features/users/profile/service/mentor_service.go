package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	constants "iysyatra_backend/internals/constants"
	model "iysyatra_backend/internals/features/users/profile/model"
	helper "iysyatra_backend/internals/helpers"
)

// MentorService runs the approval graph transitions. Approving a request
// pulls the mentee into the mentor's center bucket and devotee tier;
// unapproving pushes them back to the pending bucket and guest tier.
// Both transitions are no-ops when the flag already matches.
type MentorService struct {
	DB *gorm.DB
}

func NewMentorService(db *gorm.DB) *MentorService { return &MentorService{DB: db} }

// CreateRequest registers a mentee -> mentor nomination. One request per
// pair; renominating an existing pair just refreshes the message.
func (s *MentorService) CreateRequest(fromProfileID, toMentorID uuid.UUID, message *string) (*model.MentorRequestModel, error) {
	if fromProfileID == toMentorID {
		return nil, helper.ErrPermissionDenied("you cannot nominate yourself as mentor")
	}

	var mentor model.ProfileModel
	if err := s.DB.Where("profile_id = ?", toMentorID).First(&mentor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("mentor profile not found")
		}
		return nil, err
	}
	if mentor.ProfileUserType != constants.UserTypeMentor {
		return nil, helper.ErrPermissionDenied("target profile is not a mentor")
	}

	var req model.MentorRequestModel
	err := s.DB.
		Where("mentor_request_from_profile_id = ? AND mentor_request_to_mentor_id = ?", fromProfileID, toMentorID).
		First(&req).Error
	if err == nil {
		req.MentorRequestMessage = message
		if err := s.DB.Save(&req).Error; err != nil {
			return nil, err
		}
		return &req, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	req = model.MentorRequestModel{
		MentorRequestFromProfileID: fromProfileID,
		MentorRequestToMentorID:    toMentorID,
		MentorRequestMessage:       message,
	}
	if err := s.DB.Create(&req).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.ErrInvalidState("a request for this mentor already exists")
		}
		return nil, err
	}
	return &req, nil
}

// Approve flips the request to approved and migrates the mentee. Safe to
// re-invoke: an already-approved request changes nothing.
func (s *MentorService) Approve(requestID uuid.UUID, actorID uuid.UUID, isStaff bool, now time.Time) (*model.MentorRequestModel, error) {
	var req model.MentorRequestModel
	if err := s.DB.Where("mentor_request_id = ?", requestID).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("mentor request not found")
		}
		return nil, err
	}
	if !isStaff && req.MentorRequestToMentorID != actorID {
		return nil, helper.ErrPermissionDenied("only the nominated mentor can approve this request")
	}
	if req.MentorRequestIsApproved {
		return &req, nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var mentee model.ProfileModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("profile_id = ?", req.MentorRequestFromProfileID).
			First(&mentee).Error; err != nil {
			return err
		}
		var mentor model.ProfileModel
		if err := tx.Where("profile_id = ?", req.MentorRequestToMentorID).First(&mentor).Error; err != nil {
			return err
		}

		center := ""
		if mentor.ProfileCenter != nil {
			center = *mentor.ProfileCenter
		}
		newID, err := AllocateMemberID(tx, YearCode(now), constants.CenterCode(center))
		if err != nil {
			return err
		}

		mentee.ProfileMemberID = newID
		mentee.ProfileMentorID = &req.MentorRequestToMentorID
		mentee.ProfileUserType = constants.UserTypeDevotee
		if err := tx.Save(&mentee).Error; err != nil {
			return err
		}

		req.MentorRequestIsApproved = true
		if req.MentorRequestApprovedAt == nil {
			req.MentorRequestApprovedAt = &now
		}
		return tx.Save(&req).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Unapprove reverts an approval. The mentee is only demoted when their
// current mentor still equals this request's target, so an older request
// cannot clobber a newer approval.
func (s *MentorService) Unapprove(requestID uuid.UUID, actorID uuid.UUID, isStaff bool, now time.Time) (*model.MentorRequestModel, error) {
	var req model.MentorRequestModel
	if err := s.DB.Where("mentor_request_id = ?", requestID).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("mentor request not found")
		}
		return nil, err
	}
	if !isStaff && req.MentorRequestToMentorID != actorID {
		return nil, helper.ErrPermissionDenied("only the nominated mentor can unapprove this request")
	}
	if !req.MentorRequestIsApproved {
		return &req, nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var mentee model.ProfileModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("profile_id = ?", req.MentorRequestFromProfileID).
			First(&mentee).Error; err != nil {
			return err
		}

		if mentee.ProfileMentorID != nil && *mentee.ProfileMentorID == req.MentorRequestToMentorID {
			newID, err := AllocateMemberID(tx, YearCode(now), constants.PendingApprovalCode)
			if err != nil {
				return err
			}
			mentee.ProfileMemberID = newID
			mentee.ProfileMentorID = nil
			mentee.ProfileUserType = constants.UserTypeGuest
			if err := tx.Save(&mentee).Error; err != nil {
				return err
			}
		}

		req.MentorRequestIsApproved = false
		return tx.Save(&req).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Reject removes an unapproved request entirely.
func (s *MentorService) Reject(requestID uuid.UUID, actorID uuid.UUID, isStaff bool) error {
	var req model.MentorRequestModel
	if err := s.DB.Where("mentor_request_id = ?", requestID).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("mentor request not found")
		}
		return err
	}
	if !isStaff && req.MentorRequestToMentorID != actorID {
		return helper.ErrPermissionDenied("only the nominated mentor can reject this request")
	}
	if req.MentorRequestIsApproved {
		return helper.ErrInvalidState("unapprove the request before rejecting it")
	}
	return s.DB.Delete(&req).Error
}

// HasApprovedMentee reports whether mentee -> mentor is an approved edge.
// Registration and eligibility checks lean on this.
func HasApprovedMentee(db *gorm.DB, menteeID, mentorID uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&model.MentorRequestModel{}).
		Where("mentor_request_from_profile_id = ? AND mentor_request_to_mentor_id = ? AND mentor_request_is_approved", menteeID, mentorID).
		Count(&n).Error
	return n > 0, err
}

// HasApprovedMentor reports whether the profile holds any approved
// mentor edge at all. Eligibility requests require one.
func HasApprovedMentor(db *gorm.DB, menteeID uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&model.MentorRequestModel{}).
		Where("mentor_request_from_profile_id = ? AND mentor_request_is_approved", menteeID).
		Count(&n).Error
	return n > 0, err
}
