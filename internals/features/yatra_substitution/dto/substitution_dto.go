package dto

import (
	"time"

	model "iysyatra_backend/internals/features/yatra_substitution/model"
)

/* ======================= REQUESTS ======================= */

type CreateSubstitutionRequest struct {
	RegistrationID string `json:"registration_id" validate:"required,uuid"`
	TargetMemberID int    `json:"target_member_id" validate:"required,min=1"`
}

type RespondSubstitutionRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
	Code   string `json:"code" validate:"omitempty,len=2,numeric"`
}

/* ======================= RESPONSES ======================= */

type SubstitutionResponse struct {
	RequestID         string     `json:"request_id"`
	RegistrationID    string     `json:"registration_id"`
	InitiatorID       string     `json:"initiator_id"`
	TargetProfileID   string     `json:"target_profile_id"`
	Status            string     `json:"status"`
	ExpiresAt         time.Time  `json:"expires_at"`
	AmountPaidINR     int        `json:"amount_paid_inr"`
	FeeCollected      bool       `json:"fee_collected"`
	NewRegistrationID *string    `json:"new_registration_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	RespondedAt       *time.Time `json:"responded_at,omitempty"`

	// Set only on the create response, for the initiator to relay.
	Code string `json:"code,omitempty"`
}

func FromSubstitutionModel(m model.SubstitutionRequestModel) SubstitutionResponse {
	out := SubstitutionResponse{
		RequestID:       m.YatraSubstitutionRequestID.String(),
		RegistrationID:  m.YatraSubstitutionRequestRegistrationID.String(),
		InitiatorID:     m.YatraSubstitutionRequestInitiatorID.String(),
		TargetProfileID: m.YatraSubstitutionRequestTargetProfileID.String(),
		Status:          m.YatraSubstitutionRequestStatus,
		ExpiresAt:       m.YatraSubstitutionRequestExpiresAt,
		AmountPaidINR:   m.YatraSubstitutionRequestAmountPaidINR,
		FeeCollected:    m.YatraSubstitutionRequestFeeCollected,
		CreatedAt:       m.YatraSubstitutionRequestCreatedAt,
		RespondedAt:     m.YatraSubstitutionRequestRespondedAt,
	}
	if m.YatraSubstitutionRequestNewRegistrationID != nil {
		s := m.YatraSubstitutionRequestNewRegistrationID.String()
		out.NewRegistrationID = &s
	}
	return out
}
