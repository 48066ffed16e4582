package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusUnderReview = "under_review"
	PaymentStatusVerified    = "verified"
	PaymentStatusRejected    = "rejected"
	PaymentStatusRefunded    = "refunded"
)

// One submitted payment proof. The unique transaction id is the only
// dedup guard: a resubmission of the same UTR is a hard conflict, not
// a retry.
type PaymentModel struct {
	PaymentID            uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`
	PaymentTransactionID string    `gorm:"column:payment_transaction_id;type:varchar(100);not null;uniqueIndex:uq_payment_transaction" json:"payment_transaction_id"`
	PaymentAmountINR     int       `gorm:"column:payment_amount_inr;not null;check:payment_amount_inr > 0" json:"payment_amount_inr"`

	PaymentStatus string `gorm:"column:payment_status;type:varchar(20);not null;default:under_review;index" json:"payment_status"`

	// Opaque locator of the uploaded proof; contents are never parsed.
	PaymentProofURL *string `gorm:"column:payment_proof_url;type:text" json:"payment_proof_url,omitempty"`

	PaymentSubmittedBy uuid.UUID  `gorm:"column:payment_submitted_by;type:uuid;not null;index" json:"payment_submitted_by"`
	PaymentProcessedBy *uuid.UUID `gorm:"column:payment_processed_by;type:uuid" json:"payment_processed_by,omitempty"`
	PaymentProcessedAt *time.Time `gorm:"column:payment_processed_at" json:"payment_processed_at,omitempty"`
	PaymentNotes       *string    `gorm:"column:payment_notes;type:text" json:"payment_notes,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string { return "payments" }
