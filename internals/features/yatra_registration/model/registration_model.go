package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Registration lifecycle. pending/partial/paid are derived from the
// installment ledger; the terminal statuses are set by other flows and
// never recomputed away.
const (
	RegStatusPending     = "pending"
	RegStatusPartial     = "partial"
	RegStatusPaid        = "paid"
	RegStatusCancelled   = "cancelled"
	RegStatusSubstituted = "substituted"
	RegStatusRefunded    = "refunded"
	RegStatusAttended    = "attended"
)

type YatraRegistrationModel struct {
	YatraRegistrationID      uuid.UUID `gorm:"column:yatra_registration_id;type:uuid;default:gen_random_uuid();primaryKey" json:"yatra_registration_id"`
	YatraRegistrationYatraID uuid.UUID `gorm:"column:yatra_registration_yatra_id;type:uuid;not null;uniqueIndex:uq_yatra_registration_pilgrim" json:"yatra_registration_yatra_id"`

	// RegisteredBy is the account that filled the form; RegisteredFor is
	// the pilgrim actually travelling. Mentors register on behalf of
	// their mentees, so the two can differ.
	YatraRegistrationRegisteredBy  uuid.UUID `gorm:"column:yatra_registration_registered_by;type:uuid;not null;index" json:"yatra_registration_registered_by"`
	YatraRegistrationRegisteredFor uuid.UUID `gorm:"column:yatra_registration_registered_for;type:uuid;not null;uniqueIndex:uq_yatra_registration_pilgrim" json:"yatra_registration_registered_for"`

	YatraRegistrationStatus   string            `gorm:"column:yatra_registration_status;type:varchar(20);not null;default:pending;index" json:"yatra_registration_status"`
	YatraRegistrationFormData datatypes.JSONMap `gorm:"column:yatra_registration_form_data;type:jsonb" json:"yatra_registration_form_data,omitempty"`

	YatraRegistrationFeeCollected bool `gorm:"column:yatra_registration_fee_collected;not null;default:false" json:"yatra_registration_fee_collected"`

	YatraRegistrationSubstitutedTo    *uuid.UUID `gorm:"column:yatra_registration_substituted_to;type:uuid" json:"yatra_registration_substituted_to,omitempty"`
	YatraRegistrationSubstitutionDate *time.Time `gorm:"column:yatra_registration_substitution_date" json:"yatra_registration_substitution_date,omitempty"`
	YatraRegistrationCancellationDate *time.Time `gorm:"column:yatra_registration_cancellation_date" json:"yatra_registration_cancellation_date,omitempty"`

	YatraRegistrationRcsDownloadCount int            `gorm:"column:yatra_registration_rcs_download_count;not null;default:0" json:"yatra_registration_rcs_download_count"`
	YatraRegistrationRcsDownloadedAt  datatypes.JSON `gorm:"column:yatra_registration_rcs_downloaded_at;type:jsonb" json:"yatra_registration_rcs_downloaded_at,omitempty"`

	YatraRegistrationCreatedAt time.Time `gorm:"column:yatra_registration_created_at;autoCreateTime" json:"yatra_registration_created_at"`
	YatraRegistrationUpdatedAt time.Time `gorm:"column:yatra_registration_updated_at;autoUpdateTime" json:"yatra_registration_updated_at"`
}

func (YatraRegistrationModel) TableName() string { return "yatra_registrations" }

// IsTerminal reports whether the status is one the reconciler must
// never overwrite.
func IsTerminal(status string) bool {
	switch status {
	case RegStatusCancelled, RegStatusSubstituted, RegStatusRefunded, RegStatusAttended:
		return true
	}
	return false
}

// Per-registration copy of the yatra's installment schedule. A row is
// "initiated" when a payment is linked to it and "paid" once that
// payment is verified.
type YatraRegistrationInstallmentModel struct {
	YatraRegistrationInstallmentID             uuid.UUID `gorm:"column:yatra_registration_installment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"yatra_registration_installment_id"`
	YatraRegistrationInstallmentRegistrationID uuid.UUID `gorm:"column:yatra_registration_installment_registration_id;type:uuid;not null;uniqueIndex:uq_yatra_registration_installment" json:"yatra_registration_installment_registration_id"`
	YatraRegistrationInstallmentInstallmentID  uuid.UUID `gorm:"column:yatra_registration_installment_installment_id;type:uuid;not null;uniqueIndex:uq_yatra_registration_installment" json:"yatra_registration_installment_installment_id"`

	YatraRegistrationInstallmentPaymentID *uuid.UUID `gorm:"column:yatra_registration_installment_payment_id;type:uuid;constraint:OnDelete:SET NULL" json:"yatra_registration_installment_payment_id,omitempty"`

	YatraRegistrationInstallmentIsPaid bool       `gorm:"column:yatra_registration_installment_is_paid;not null;default:false" json:"yatra_registration_installment_is_paid"`
	YatraRegistrationInstallmentPaidAt *time.Time `gorm:"column:yatra_registration_installment_paid_at" json:"yatra_registration_installment_paid_at,omitempty"`

	YatraRegistrationInstallmentVerifiedBy *uuid.UUID `gorm:"column:yatra_registration_installment_verified_by;type:uuid" json:"yatra_registration_installment_verified_by,omitempty"`
	YatraRegistrationInstallmentVerifiedAt *time.Time `gorm:"column:yatra_registration_installment_verified_at" json:"yatra_registration_installment_verified_at,omitempty"`
	YatraRegistrationInstallmentNotes      *string    `gorm:"column:yatra_registration_installment_notes;type:text" json:"yatra_registration_installment_notes,omitempty"`
}

func (YatraRegistrationInstallmentModel) TableName() string {
	return "yatra_registration_installments"
}
