package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	regmodel "iysyatra_backend/internals/features/yatra_registration/model"
)

// DeriveStatus computes the ledger status from installment counts.
// initiated = installments with a payment linked, paid = installments
// verified paid, total = installment count in the yatra's schedule.
func DeriveStatus(initiated, paid, total int64) string {
	if initiated == 0 {
		return regmodel.RegStatusPending
	}
	if total > 0 && paid == total {
		return regmodel.RegStatusPaid
	}
	return regmodel.RegStatusPartial
}

// RecomputeStatus replays the derivation for one registration and
// persists the result. Terminal statuses are left untouched, so the
// function is always safe to re-run.
func RecomputeStatus(tx *gorm.DB, registrationID uuid.UUID) error {
	var reg regmodel.YatraRegistrationModel
	if err := tx.Where("yatra_registration_id = ?", registrationID).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if regmodel.IsTerminal(reg.YatraRegistrationStatus) {
		return nil
	}

	var initiated int64
	if err := tx.Model(&regmodel.YatraRegistrationInstallmentModel{}).
		Where("yatra_registration_installment_registration_id = ?", registrationID).
		Where("yatra_registration_installment_payment_id IS NOT NULL").
		Count(&initiated).Error; err != nil {
		return err
	}

	var paid int64
	if err := tx.Model(&regmodel.YatraRegistrationInstallmentModel{}).
		Where("yatra_registration_installment_registration_id = ?", registrationID).
		Where("yatra_registration_installment_is_paid = TRUE").
		Count(&paid).Error; err != nil {
		return err
	}

	var total int64
	if err := tx.Table("yatra_installments").
		Where("yatra_installment_yatra_id = ?", reg.YatraRegistrationYatraID).
		Count(&total).Error; err != nil {
		return err
	}

	next := DeriveStatus(initiated, paid, total)
	if next == reg.YatraRegistrationStatus {
		return nil
	}
	return tx.Model(&regmodel.YatraRegistrationModel{}).
		Where("yatra_registration_id = ?", registrationID).
		Update("yatra_registration_status", next).Error
}
