package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "iysyatra_backend/internals/features/yatra_registration/model"
)

/* ======================= REQUESTS ======================= */

type CreateRegistrationRequest struct {
	YatraID string `json:"yatra_id" validate:"required,uuid"`

	// Empty means the caller is registering themselves.
	RegisteredForProfileID *string `json:"registered_for_profile_id" validate:"omitempty,uuid"`

	FormData datatypes.JSONMap `json:"form_data"`
}

func (r CreateRegistrationRequest) ResolveIDs(self uuid.UUID) (yatraID, registeredFor uuid.UUID, err error) {
	yatraID, err = uuid.Parse(r.YatraID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	registeredFor = self
	if r.RegisteredForProfileID != nil && *r.RegisteredForProfileID != "" {
		registeredFor, err = uuid.Parse(*r.RegisteredForProfileID)
		if err != nil {
			return uuid.Nil, uuid.Nil, err
		}
	}
	return yatraID, registeredFor, nil
}

type RequestEligibilityRequest struct {
	YatraID string `json:"yatra_id" validate:"required,uuid"`

	// Staff and mentors may raise the request for another profile.
	ProfileID *string `json:"profile_id" validate:"omitempty,uuid"`
}

type AssignAccommodationRequest struct {
	AccommodationID string  `json:"accommodation_id" validate:"required,uuid"`
	RoomNumber      *string `json:"room_number" validate:"omitempty,max=50"`
}

type AssignJourneyRequest struct {
	JourneyID  string  `json:"journey_id" validate:"required,uuid"`
	SeatNumber *string `json:"seat_number" validate:"omitempty,max=20"`
}

type BulkApproveEligibilityRequest struct {
	EligibilityIDs []string `json:"eligibility_ids" validate:"required,min=1,dive,uuid"`
}

type UpdateRegistrationRequest struct {
	FormData datatypes.JSONMap `json:"form_data" validate:"required"`
}

type SelectCustomFieldValuesRequest struct {
	ValueIDs []string `json:"value_ids" validate:"required,min=1,dive,uuid"`
}

type MarkAttendedRequest struct {
	FeeConfirmed bool `json:"fee_confirmed"`
}

/* ======================= RESPONSES ======================= */

type RegistrationInstallmentResponse struct {
	ID            string     `json:"id"`
	InstallmentID string     `json:"installment_id"`
	PaymentID     *string    `json:"payment_id,omitempty"`
	IsPaid        bool       `json:"is_paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	VerifiedBy    *string    `json:"verified_by,omitempty"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

func FromRegistrationInstallmentModel(m model.YatraRegistrationInstallmentModel) RegistrationInstallmentResponse {
	out := RegistrationInstallmentResponse{
		ID:            m.YatraRegistrationInstallmentID.String(),
		InstallmentID: m.YatraRegistrationInstallmentInstallmentID.String(),
		IsPaid:        m.YatraRegistrationInstallmentIsPaid,
		PaidAt:        m.YatraRegistrationInstallmentPaidAt,
		VerifiedAt:    m.YatraRegistrationInstallmentVerifiedAt,
		Notes:         m.YatraRegistrationInstallmentNotes,
	}
	if m.YatraRegistrationInstallmentPaymentID != nil {
		s := m.YatraRegistrationInstallmentPaymentID.String()
		out.PaymentID = &s
	}
	if m.YatraRegistrationInstallmentVerifiedBy != nil {
		s := m.YatraRegistrationInstallmentVerifiedBy.String()
		out.VerifiedBy = &s
	}
	return out
}

type RegistrationResponse struct {
	RegistrationID   string            `json:"registration_id"`
	YatraID          string            `json:"yatra_id"`
	RegisteredBy     string            `json:"registered_by"`
	RegisteredFor    string            `json:"registered_for"`
	Status           string            `json:"status"`
	FormData         datatypes.JSONMap `json:"form_data,omitempty"`
	SubstitutedTo    *string           `json:"substituted_to,omitempty"`
	SubstitutionDate *time.Time        `json:"substitution_date,omitempty"`
	CancellationDate *time.Time        `json:"cancellation_date,omitempty"`
	RcsDownloadCount int               `json:"rcs_download_count"`
	CreatedAt        time.Time         `json:"created_at"`

	Installments []RegistrationInstallmentResponse `json:"installments,omitempty"`
}

func FromRegistrationModel(m model.YatraRegistrationModel, installments []model.YatraRegistrationInstallmentModel) RegistrationResponse {
	out := RegistrationResponse{
		RegistrationID:   m.YatraRegistrationID.String(),
		YatraID:          m.YatraRegistrationYatraID.String(),
		RegisteredBy:     m.YatraRegistrationRegisteredBy.String(),
		RegisteredFor:    m.YatraRegistrationRegisteredFor.String(),
		Status:           m.YatraRegistrationStatus,
		FormData:         m.YatraRegistrationFormData,
		SubstitutionDate: m.YatraRegistrationSubstitutionDate,
		CancellationDate: m.YatraRegistrationCancellationDate,
		RcsDownloadCount: m.YatraRegistrationRcsDownloadCount,
		CreatedAt:        m.YatraRegistrationCreatedAt,
	}
	if m.YatraRegistrationSubstitutedTo != nil {
		s := m.YatraRegistrationSubstitutedTo.String()
		out.SubstitutedTo = &s
	}
	for _, inst := range installments {
		out.Installments = append(out.Installments, FromRegistrationInstallmentModel(inst))
	}
	return out
}

type EligibilityResponse struct {
	EligibilityID string     `json:"eligibility_id"`
	YatraID       string     `json:"yatra_id"`
	ProfileID     string     `json:"profile_id"`
	IsApproved    bool       `json:"is_approved"`
	ApprovedBy    *string    `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func FromEligibilityModel(m model.YatraEligibilityModel) EligibilityResponse {
	out := EligibilityResponse{
		EligibilityID: m.YatraEligibilityID.String(),
		YatraID:       m.YatraEligibilityYatraID.String(),
		ProfileID:     m.YatraEligibilityProfileID.String(),
		IsApproved:    m.YatraEligibilityIsApproved,
		ApprovedAt:    m.YatraEligibilityApprovedAt,
		CreatedAt:     m.YatraEligibilityCreatedAt,
	}
	if m.YatraEligibilityApprovedBy != nil {
		s := m.YatraEligibilityApprovedBy.String()
		out.ApprovedBy = &s
	}
	return out
}
