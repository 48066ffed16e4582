package service

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	userservice "iysyatra_backend/internals/features/users/profile/service"
	yatramodel "iysyatra_backend/internals/features/yatra/model"
	regmodel "iysyatra_backend/internals/features/yatra_registration/model"
	helper "iysyatra_backend/internals/helpers"
)

type RegistrationService struct {
	DB *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{DB: db}
}

/* ======================= CREATE ======================= */

// Create opens a registration for registeredFor, driven by
// registeredBy. The eligibility gate must already be open for the
// pilgrim, and a mentor registering someone else must hold an approved
// mentor link to them. The yatra's installment schedule is cloned into
// per-registration ledger rows inside the same transaction.
func (s *RegistrationService) Create(yatraID, registeredBy, registeredFor uuid.UUID, isStaff bool, formData datatypes.JSONMap) (*regmodel.YatraRegistrationModel, error) {
	var yatra yatramodel.YatraModel
	if err := s.DB.Where("yatra_id = ?", yatraID).First(&yatra).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("yatra not found")
		}
		return nil, err
	}
	if !yatra.YatraIsRegistrationOpen {
		return nil, helper.ErrInvalidState("registration window is closed for this yatra")
	}

	approved, err := IsApproved(s.DB, yatraID, registeredFor)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, helper.ErrPermissionDenied("profile is not eligibility-approved for this yatra")
	}

	if registeredFor != registeredBy && !isStaff {
		ok, err := userservice.HasApprovedMentee(s.DB, registeredFor, registeredBy)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, helper.ErrPermissionDenied("only the pilgrim's mentor may register on their behalf")
		}
	}

	var schedule []yatramodel.YatraInstallmentModel
	if err := s.DB.
		Where("yatra_installment_yatra_id = ?", yatraID).
		Order("yatra_installment_order ASC").
		Find(&schedule).Error; err != nil {
		return nil, err
	}

	reg := regmodel.YatraRegistrationModel{
		YatraRegistrationYatraID:       yatraID,
		YatraRegistrationRegisteredBy:  registeredBy,
		YatraRegistrationRegisteredFor: registeredFor,
		YatraRegistrationStatus:        regmodel.RegStatusPending,
		YatraRegistrationFormData:      formData,
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Create(&reg).Error; err != nil {
		tx.Rollback()
		if helper.IsUniqueViolation(err) {
			return nil, helper.ErrInvalidState("profile already registered for this yatra")
		}
		return nil, err
	}

	if len(schedule) > 0 {
		rows := make([]regmodel.YatraRegistrationInstallmentModel, 0, len(schedule))
		for _, inst := range schedule {
			rows = append(rows, regmodel.YatraRegistrationInstallmentModel{
				YatraRegistrationInstallmentRegistrationID: reg.YatraRegistrationID,
				YatraRegistrationInstallmentInstallmentID:  inst.YatraInstallmentID,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

/* ======================= CANCEL ======================= */

// Cancel marks a registration cancelled. The row stays for audit.
// Blocked while attended, while any linked payment is still awaiting
// verification, or while a live substitution handoff is in flight.
func (s *RegistrationService) Cancel(registrationID, actorID uuid.UUID, isStaff bool, now time.Time) error {
	var reg regmodel.YatraRegistrationModel
	if err := s.DB.Where("yatra_registration_id = ?", registrationID).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("registration not found")
		}
		return err
	}

	if !isStaff && reg.YatraRegistrationRegisteredBy != actorID && reg.YatraRegistrationRegisteredFor != actorID {
		return helper.ErrPermissionDenied("not your registration")
	}

	if reg.YatraRegistrationStatus == regmodel.RegStatusAttended {
		return helper.ErrInvalidState("cannot cancel an attended registration")
	}
	if regmodel.IsTerminal(reg.YatraRegistrationStatus) {
		return helper.ErrInvalidState("registration is already closed")
	}

	var pendingPayments int64
	if err := s.DB.Table("yatra_registration_installments AS ri").
		Joins("JOIN payments p ON p.payment_id = ri.yatra_registration_installment_payment_id").
		Where("ri.yatra_registration_installment_registration_id = ?", registrationID).
		Where("p.payment_status = ?", "under_review").
		Count(&pendingPayments).Error; err != nil {
		return err
	}
	if pendingPayments > 0 {
		return helper.ErrInvalidState("a payment on this registration is still pending verification")
	}

	var liveSubs int64
	if err := s.DB.Table("yatra_substitution_requests").
		Where("yatra_substitution_request_registration_id = ?", registrationID).
		Where("yatra_substitution_request_status = ?", "pending").
		Where("yatra_substitution_request_expires_at > ?", now).
		Count(&liveSubs).Error; err != nil {
		return err
	}
	if liveSubs > 0 {
		return helper.ErrInvalidState("a substitution request is in progress for this registration")
	}

	return s.DB.Model(&regmodel.YatraRegistrationModel{}).
		Where("yatra_registration_id = ?", registrationID).
		Updates(map[string]interface{}{
			"yatra_registration_status":            regmodel.RegStatusCancelled,
			"yatra_registration_cancellation_date": now,
		}).Error
}

/* ======================= RCS DOWNLOAD ======================= */

// RecordRcsDownload bumps the counter and appends the timestamp to the
// download history. The yatra's RCS window must be open.
func (s *RegistrationService) RecordRcsDownload(registrationID, actorID uuid.UUID, isStaff bool, now time.Time) (*regmodel.YatraRegistrationModel, error) {
	var reg regmodel.YatraRegistrationModel
	if err := s.DB.Where("yatra_registration_id = ?", registrationID).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("registration not found")
		}
		return nil, err
	}
	if !isStaff && reg.YatraRegistrationRegisteredBy != actorID && reg.YatraRegistrationRegisteredFor != actorID {
		return nil, helper.ErrPermissionDenied("not your registration")
	}

	var yatra yatramodel.YatraModel
	if err := s.DB.Where("yatra_id = ?", reg.YatraRegistrationYatraID).First(&yatra).Error; err != nil {
		return nil, err
	}
	if !yatra.YatraIsRcsDownloadOpen {
		return nil, helper.ErrInvalidState("RCS download window is closed for this yatra")
	}

	history := make([]string, 0, reg.YatraRegistrationRcsDownloadCount+1)
	if len(reg.YatraRegistrationRcsDownloadedAt) > 0 {
		if err := sonic.Unmarshal(reg.YatraRegistrationRcsDownloadedAt, &history); err != nil {
			history = history[:0]
		}
	}
	history = append(history, now.UTC().Format(time.RFC3339))
	raw, err := sonic.Marshal(history)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(&regmodel.YatraRegistrationModel{}).
		Where("yatra_registration_id = ?", registrationID).
		Updates(map[string]interface{}{
			"yatra_registration_rcs_download_count": gorm.Expr("yatra_registration_rcs_download_count + 1"),
			"yatra_registration_rcs_downloaded_at":  datatypes.JSON(raw),
		}).Error; err != nil {
		return nil, err
	}

	reg.YatraRegistrationRcsDownloadCount++
	reg.YatraRegistrationRcsDownloadedAt = datatypes.JSON(raw)
	return &reg, nil
}
