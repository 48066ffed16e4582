package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	yatramodel "iysyatra_backend/internals/features/yatra/model"
	regmodel "iysyatra_backend/internals/features/yatra_registration/model"
	helper "iysyatra_backend/internals/helpers"
)

// PendingFee describes money still owed on a substituted-in
// registration before it may be marked attended.
type PendingFee struct {
	SubstitutionRequestID uuid.UUID `json:"substitution_request_id"`
	FeeINR                int       `json:"fee_inr"`
}

// AttendanceService marks pilgrims attended at the yatra itself. The
// substitution fee is cash or UPI collected at the desk, so attendance
// is a two-step handshake: inspect the fee, collect it, then confirm.
type AttendanceService struct {
	DB *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{DB: db}
}

// InspectFee returns the outstanding substitution fee for a
// registration, or nil when nothing is owed.
func (s *AttendanceService) InspectFee(registrationID uuid.UUID) (*PendingFee, error) {
	var reg regmodel.YatraRegistrationModel
	if err := s.DB.Where("yatra_registration_id = ?", registrationID).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("registration not found")
		}
		return nil, err
	}

	var sub struct {
		YatraSubstitutionRequestID uuid.UUID `gorm:"column:yatra_substitution_request_id"`
	}
	err := s.DB.Table("yatra_substitution_requests").
		Where("yatra_substitution_request_new_registration_id = ?", registrationID).
		Where("yatra_substitution_request_status = ?", "accepted").
		Where("yatra_substitution_request_fee_collected = FALSE").
		Take(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var yatra yatramodel.YatraModel
	if err := s.DB.Where("yatra_id = ?", reg.YatraRegistrationYatraID).First(&yatra).Error; err != nil {
		return nil, err
	}

	return &PendingFee{
		SubstitutionRequestID: sub.YatraSubstitutionRequestID,
		FeeINR:                yatra.YatraSubstitutionFeeINR + yatra.YatraCancellationFeeINR,
	}, nil
}

// MarkAttended finalizes attendance. A fully paid registration is
// required; if a substitution fee is outstanding the caller must have
// confirmed collection, and confirming stamps fee_collected on the
// substitution record in the same transaction as the status change.
func (s *AttendanceService) MarkAttended(registrationID uuid.UUID, feeConfirmed bool) error {
	var reg regmodel.YatraRegistrationModel
	if err := s.DB.Where("yatra_registration_id = ?", registrationID).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("registration not found")
		}
		return err
	}

	if reg.YatraRegistrationStatus == regmodel.RegStatusAttended {
		return nil
	}
	if reg.YatraRegistrationStatus != regmodel.RegStatusPaid {
		return helper.ErrInvalidState("only a fully paid registration can be marked attended")
	}

	pending, err := s.InspectFee(registrationID)
	if err != nil {
		return err
	}
	if pending != nil && !feeConfirmed {
		return helper.ErrInvalidState("substitution fee must be collected before marking attended")
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if pending != nil {
		if err := tx.Table("yatra_substitution_requests").
			Where("yatra_substitution_request_id = ?", pending.SubstitutionRequestID).
			Updates(map[string]interface{}{
				"yatra_substitution_request_fee_collected": true,
			}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Model(&regmodel.YatraRegistrationModel{}).
		Where("yatra_registration_id = ?", registrationID).
		Updates(map[string]interface{}{
			"yatra_registration_status":        regmodel.RegStatusAttended,
			"yatra_registration_fee_collected": pending != nil || reg.YatraRegistrationFeeCollected,
		}).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
