package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubStatusPending  = "pending"
	SubStatusAccepted = "accepted"
	SubStatusRejected = "rejected"
)

// A time-boxed handoff of a registration to another profile. The
// 2-digit code is relayed person to person and verified on accept;
// only its bcrypt hash is stored. Expired and rejected requests are
// deleted, so the table only holds pending and accepted rows.
type SubstitutionRequestModel struct {
	YatraSubstitutionRequestID             uuid.UUID `gorm:"column:yatra_substitution_request_id;type:uuid;default:gen_random_uuid();primaryKey" json:"yatra_substitution_request_id"`
	YatraSubstitutionRequestRegistrationID uuid.UUID `gorm:"column:yatra_substitution_request_registration_id;type:uuid;not null;index" json:"yatra_substitution_request_registration_id"`

	YatraSubstitutionRequestInitiatorID     uuid.UUID `gorm:"column:yatra_substitution_request_initiator_id;type:uuid;not null" json:"yatra_substitution_request_initiator_id"`
	YatraSubstitutionRequestTargetProfileID uuid.UUID `gorm:"column:yatra_substitution_request_target_profile_id;type:uuid;not null;index" json:"yatra_substitution_request_target_profile_id"`

	YatraSubstitutionRequestCodeHash string `gorm:"column:yatra_substitution_request_code_hash;type:varchar(100);not null" json:"-"`

	YatraSubstitutionRequestStatus    string    `gorm:"column:yatra_substitution_request_status;type:varchar(20);not null;default:pending;index" json:"yatra_substitution_request_status"`
	YatraSubstitutionRequestExpiresAt time.Time `gorm:"column:yatra_substitution_request_expires_at;not null" json:"yatra_substitution_request_expires_at"`

	// Verified rupees already paid on the registration when the request
	// was raised. Audit snapshot, never recomputed.
	YatraSubstitutionRequestAmountPaidINR int `gorm:"column:yatra_substitution_request_amount_paid_inr;not null;default:0" json:"yatra_substitution_request_amount_paid_inr"`

	YatraSubstitutionRequestFeeCollected bool `gorm:"column:yatra_substitution_request_fee_collected;not null;default:false" json:"yatra_substitution_request_fee_collected"`

	YatraSubstitutionRequestNewRegistrationID *uuid.UUID `gorm:"column:yatra_substitution_request_new_registration_id;type:uuid" json:"yatra_substitution_request_new_registration_id,omitempty"`

	YatraSubstitutionRequestCreatedAt   time.Time  `gorm:"column:yatra_substitution_request_created_at;autoCreateTime" json:"yatra_substitution_request_created_at"`
	YatraSubstitutionRequestRespondedAt *time.Time `gorm:"column:yatra_substitution_request_responded_at" json:"yatra_substitution_request_responded_at,omitempty"`
}

func (SubstitutionRequestModel) TableName() string { return "yatra_substitution_requests" }
