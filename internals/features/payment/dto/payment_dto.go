package dto

import (
	"time"

	"github.com/google/uuid"

	model "iysyatra_backend/internals/features/payment/model"
)

/* ======================= REQUESTS ======================= */

type SubmitPaymentRequest struct {
	TransactionID  string   `json:"transaction_id" validate:"required,max=100"`
	AmountINR      int      `json:"amount_inr" validate:"required,min=1"`
	ProofURL       *string  `json:"proof_url" validate:"omitempty,max=2048"`
	InstallmentIDs []string `json:"installment_ids" validate:"required,min=1,dive,uuid"`
}

func (r SubmitPaymentRequest) ParseInstallmentIDs() ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(r.InstallmentIDs))
	for _, raw := range r.InstallmentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

type AttachProofRequest struct {
	ProofURL string `json:"proof_url" validate:"required,max=2048"`
}

type ProcessPaymentRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=1000"`
}

/* ======================= RESPONSES ======================= */

type PaymentResponse struct {
	PaymentID     string     `json:"payment_id"`
	TransactionID string     `json:"transaction_id"`
	AmountINR     int        `json:"amount_inr"`
	Status        string     `json:"status"`
	ProofURL      *string    `json:"proof_url,omitempty"`
	SubmittedBy   string     `json:"submitted_by"`
	ProcessedBy   *string    `json:"processed_by,omitempty"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func FromPaymentModel(m model.PaymentModel) PaymentResponse {
	out := PaymentResponse{
		PaymentID:     m.PaymentID.String(),
		TransactionID: m.PaymentTransactionID,
		AmountINR:     m.PaymentAmountINR,
		Status:        m.PaymentStatus,
		ProofURL:      m.PaymentProofURL,
		SubmittedBy:   m.PaymentSubmittedBy.String(),
		ProcessedAt:   m.PaymentProcessedAt,
		Notes:         m.PaymentNotes,
		CreatedAt:     m.PaymentCreatedAt,
	}
	if m.PaymentProcessedBy != nil {
		s := m.PaymentProcessedBy.String()
		out.ProcessedBy = &s
	}
	return out
}
