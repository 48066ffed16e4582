package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	paymodel "iysyatra_backend/internals/features/payment/model"
	regmodel "iysyatra_backend/internals/features/yatra_registration/model"
	regservice "iysyatra_backend/internals/features/yatra_registration/service"
	helper "iysyatra_backend/internals/helpers"
)

// ReconcileService owns the payment verification state machine. Every
// transition is a full replay over the payment's linked installment
// set, never an incremental patch, so re-invoking any of them after a
// partial failure converges to the same state.
type ReconcileService struct {
	DB *gorm.DB
}

func NewReconcileService(db *gorm.DB) *ReconcileService {
	return &ReconcileService{DB: db}
}

/* ======================= SUBMIT ======================= */

// Submit records a payment proof against the selected registration
// installments. A previously used transaction id is rejected with a
// conflict; linking always resets prior verification state so the
// installments go back to pending verification.
func (s *ReconcileService) Submit(transactionID string, amountINR int, proofURL *string, submittedBy uuid.UUID, installmentIDs []uuid.UUID) (*paymodel.PaymentModel, error) {
	if len(installmentIDs) == 0 {
		return nil, helper.ErrBadRequest("at least one installment must be selected")
	}

	payment := paymodel.PaymentModel{
		PaymentTransactionID: transactionID,
		PaymentAmountINR:     amountINR,
		PaymentStatus:        paymodel.PaymentStatusUnderReview,
		PaymentProofURL:      proofURL,
		PaymentSubmittedBy:   submittedBy,
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

	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		if helper.IsUniqueViolation(err) {
			return nil, helper.ErrDuplicateTransaction("transaction id already recorded")
		}
		return nil, err
	}

	var rows []regmodel.YatraRegistrationInstallmentModel
	if err := tx.
		Where("yatra_registration_installment_id IN ?", installmentIDs).
		Find(&rows).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if len(rows) != len(installmentIDs) {
		tx.Rollback()
		return nil, helper.ErrNotFound("one or more installments not found")
	}

	if err := tx.Model(&regmodel.YatraRegistrationInstallmentModel{}).
		Where("yatra_registration_installment_id IN ?", installmentIDs).
		Updates(map[string]interface{}{
			"yatra_registration_installment_payment_id":  payment.PaymentID,
			"yatra_registration_installment_is_paid":     false,
			"yatra_registration_installment_paid_at":     nil,
			"yatra_registration_installment_verified_by": nil,
			"yatra_registration_installment_verified_at": nil,
		}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := recomputeRegistrations(tx, rows); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

/* ======================= VERIFY ======================= */

// Approve marks the payment verified and replays the paid state onto
// every linked installment.
func (s *ReconcileService) Approve(paymentID, verifier uuid.UUID, notes *string, now time.Time) error {
	return s.replay(paymentID, paymodel.PaymentStatusVerified, &verifier, &now, notes,
		map[string]interface{}{
			"yatra_registration_installment_is_paid":     true,
			"yatra_registration_installment_paid_at":     now,
			"yatra_registration_installment_verified_by": verifier,
			"yatra_registration_installment_verified_at": now,
		})
}

// Reject mirrors Approve but records the negative outcome. The
// verifier stamp stays: a rejection is itself a verified fact.
func (s *ReconcileService) Reject(paymentID, verifier uuid.UUID, notes *string, now time.Time) error {
	return s.replay(paymentID, paymodel.PaymentStatusRejected, &verifier, &now, notes,
		map[string]interface{}{
			"yatra_registration_installment_is_paid":     false,
			"yatra_registration_installment_paid_at":     nil,
			"yatra_registration_installment_verified_by": verifier,
			"yatra_registration_installment_verified_at": now,
		})
}

// MarkUnderReview sends the payment back to the queue, clearing the
// processor and all verification marks so registrations fall back to
// pending or partial.
func (s *ReconcileService) MarkUnderReview(paymentID uuid.UUID) error {
	return s.replay(paymentID, paymodel.PaymentStatusUnderReview, nil, nil, nil,
		map[string]interface{}{
			"yatra_registration_installment_is_paid":     false,
			"yatra_registration_installment_paid_at":     nil,
			"yatra_registration_installment_verified_by": nil,
			"yatra_registration_installment_verified_at": nil,
		})
}

// replay applies one payment transition and its installment patch in a
// single transaction, then recomputes every touched registration.
func (s *ReconcileService) replay(paymentID uuid.UUID, status string, processedBy *uuid.UUID, processedAt *time.Time, notes *string, installmentPatch map[string]interface{}) error {
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

	var payment paymodel.PaymentModel
	if err := tx.Where("payment_id = ?", paymentID).First(&payment).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("payment not found")
		}
		return err
	}

	// Re-invoking a transition the payment already completed must not
	// restamp paid_at/verified_at/processed_at with a fresh clock.
	if payment.PaymentStatus == status {
		tx.Rollback()
		return nil
	}

	patch := map[string]interface{}{
		"payment_status":       status,
		"payment_processed_by": processedBy,
		"payment_processed_at": processedAt,
	}
	if notes != nil {
		patch["payment_notes"] = *notes
	}
	if err := tx.Model(&paymodel.PaymentModel{}).
		Where("payment_id = ?", paymentID).
		Updates(patch).Error; err != nil {
		tx.Rollback()
		return err
	}

	var rows []regmodel.YatraRegistrationInstallmentModel
	if err := tx.
		Where("yatra_registration_installment_payment_id = ?", paymentID).
		Find(&rows).Error; err != nil {
		tx.Rollback()
		return err
	}

	if len(rows) > 0 {
		if err := tx.Model(&regmodel.YatraRegistrationInstallmentModel{}).
			Where("yatra_registration_installment_payment_id = ?", paymentID).
			Updates(installmentPatch).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := recomputeRegistrations(tx, rows); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// recomputeRegistrations replays status derivation once per distinct
// registration touched by the payment.
func recomputeRegistrations(tx *gorm.DB, rows []regmodel.YatraRegistrationInstallmentModel) error {
	seen := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		regID := row.YatraRegistrationInstallmentRegistrationID
		if _, ok := seen[regID]; ok {
			continue
		}
		seen[regID] = struct{}{}
		if err := regservice.RecomputeStatus(tx, regID); err != nil {
			return err
		}
	}
	return nil
}
