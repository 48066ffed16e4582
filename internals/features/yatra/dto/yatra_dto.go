package dto

import (
	"time"

	"github.com/google/uuid"

	model "iysyatra_backend/internals/features/yatra/model"
)

/* ======================= REQUESTS ======================= */

type CreateYatraRequest struct {
	Title              string  `json:"title" validate:"required,max=255"`
	Description        string  `json:"description" validate:"required"`
	StartDate          string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate            string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Location           string  `json:"location" validate:"required,max=255"`
	Capacity           int     `json:"capacity" validate:"required,min=1"`
	PaymentUpiID       *string `json:"payment_upi_id" validate:"omitempty,max=255"`
	SubstitutionFeeINR *int    `json:"substitution_fee_inr" validate:"omitempty,min=0"`
	CancellationFeeINR *int    `json:"cancellation_fee_inr" validate:"omitempty,min=0"`

	Installments []CreateInstallmentRequest `json:"installments" validate:"required,min=1,dive"`
}

type CreateInstallmentRequest struct {
	Label     string `json:"label" validate:"required,max=100"`
	AmountINR int    `json:"amount_inr" validate:"required,min=1"`
	Order     int    `json:"order" validate:"min=0"`
}

func (r CreateYatraRequest) ToModel() (*model.YatraModel, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return nil, err
	}
	m := &model.YatraModel{
		YatraTitle:       r.Title,
		YatraDescription: r.Description,
		YatraStartDate:   start,
		YatraEndDate:     end,
		YatraLocation:    r.Location,
		YatraCapacity:    r.Capacity,
		YatraPaymentUpiID: r.PaymentUpiID,
	}
	if r.SubstitutionFeeINR != nil {
		m.YatraSubstitutionFeeINR = *r.SubstitutionFeeINR
	} else {
		m.YatraSubstitutionFeeINR = 500
	}
	if r.CancellationFeeINR != nil {
		m.YatraCancellationFeeINR = *r.CancellationFeeINR
	}
	return m, nil
}

type UpdateYatraFlagsRequest struct {
	IsRegistrationOpen *bool `json:"is_registration_open"`
	IsRcsDownloadOpen  *bool `json:"is_rcs_download_open"`
	IsSubstitutionOpen *bool `json:"is_substitution_open"`
}

func (r UpdateYatraFlagsRequest) Patch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.IsRegistrationOpen != nil {
		patch["yatra_is_registration_open"] = *r.IsRegistrationOpen
	}
	if r.IsRcsDownloadOpen != nil {
		patch["yatra_is_rcs_download_open"] = *r.IsRcsDownloadOpen
	}
	if r.IsSubstitutionOpen != nil {
		patch["yatra_is_substitution_open"] = *r.IsSubstitutionOpen
	}
	return patch
}

/* ======================= RESPONSES ======================= */

type InstallmentResponse struct {
	InstallmentID string `json:"installment_id"`
	Label         string `json:"label"`
	AmountINR     int    `json:"amount_inr"`
	Order         int    `json:"order"`
}

func FromInstallmentModel(m model.YatraInstallmentModel) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID: m.YatraInstallmentID.String(),
		Label:         m.YatraInstallmentLabel,
		AmountINR:     m.YatraInstallmentAmountINR,
		Order:         m.YatraInstallmentOrder,
	}
}

type YatraResponse struct {
	YatraID            string                `json:"yatra_id"`
	Title              string                `json:"title"`
	Description        string                `json:"description"`
	StartDate          string                `json:"start_date"`
	EndDate            string                `json:"end_date"`
	Location           string                `json:"location"`
	Capacity           int                   `json:"capacity"`
	IsRegistrationOpen bool                  `json:"is_registration_open"`
	IsRcsDownloadOpen  bool                  `json:"is_rcs_download_open"`
	IsSubstitutionOpen bool                  `json:"is_substitution_open"`
	PaymentUpiID       *string               `json:"payment_upi_id,omitempty"`
	SubstitutionFeeINR int                   `json:"substitution_fee_inr"`
	CancellationFeeINR int                   `json:"cancellation_fee_inr"`
	TotalAmountINR     int                   `json:"total_amount_inr"`
	Installments       []InstallmentResponse `json:"installments"`
	CreatedAt          time.Time             `json:"created_at"`
}

func FromYatraModel(m model.YatraModel, installments []model.YatraInstallmentModel) YatraResponse {
	insts := make([]InstallmentResponse, 0, len(installments))
	total := 0
	for _, i := range installments {
		insts = append(insts, FromInstallmentModel(i))
		total += i.YatraInstallmentAmountINR
	}
	return YatraResponse{
		YatraID:            m.YatraID.String(),
		Title:              m.YatraTitle,
		Description:        m.YatraDescription,
		StartDate:          m.YatraStartDate.Format("2006-01-02"),
		EndDate:            m.YatraEndDate.Format("2006-01-02"),
		Location:           m.YatraLocation,
		Capacity:           m.YatraCapacity,
		IsRegistrationOpen: m.YatraIsRegistrationOpen,
		IsRcsDownloadOpen:  m.YatraIsRcsDownloadOpen,
		IsSubstitutionOpen: m.YatraIsSubstitutionOpen,
		PaymentUpiID:       m.YatraPaymentUpiID,
		SubstitutionFeeINR: m.YatraSubstitutionFeeINR,
		CancellationFeeINR: m.YatraCancellationFeeINR,
		TotalAmountINR:     total,
		Installments:       insts,
		CreatedAt:          m.YatraCreatedAt,
	}
}

/* ======================= CATALOG REQUESTS ======================= */

type CreateJourneyRequest struct {
	Type          string  `json:"type" validate:"required,oneof=onward return break"`
	FromLocation  string  `json:"from_location" validate:"required,max=255"`
	ToLocation    string  `json:"to_location" validate:"required,max=255"`
	StartDatetime string  `json:"start_datetime" validate:"required"`
	EndDatetime   string  `json:"end_datetime" validate:"required"`
	ModeOfTravel  *string `json:"mode_of_travel" validate:"omitempty,max=50"`
	Remarks       *string `json:"remarks"`
}

func (r CreateJourneyRequest) ToModel(yatraID uuid.UUID) (*model.YatraJourneyModel, error) {
	start, err := time.Parse(time.RFC3339, r.StartDatetime)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.EndDatetime)
	if err != nil {
		return nil, err
	}
	return &model.YatraJourneyModel{
		YatraJourneyYatraID:       yatraID,
		YatraJourneyType:          r.Type,
		YatraJourneyFromLocation:  r.FromLocation,
		YatraJourneyToLocation:    r.ToLocation,
		YatraJourneyStartDatetime: start,
		YatraJourneyEndDatetime:   end,
		YatraJourneyModeOfTravel:  r.ModeOfTravel,
		YatraJourneyRemarks:       r.Remarks,
	}, nil
}

type CreateFormFieldRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Label      string  `json:"label" validate:"required,max=200"`
	Type       string  `json:"type" validate:"required,oneof=text number date select checkbox"`
	Options    *string `json:"options"`
	IsRequired bool    `json:"is_required"`
	Order      int     `json:"order" validate:"min=0"`
}

func (r CreateFormFieldRequest) ToModel(yatraID uuid.UUID) *model.YatraFormFieldModel {
	return &model.YatraFormFieldModel{
		YatraFormFieldYatraID:    yatraID,
		YatraFormFieldName:       r.Name,
		YatraFormFieldLabel:      r.Label,
		YatraFormFieldType:       r.Type,
		YatraFormFieldOptions:    r.Options,
		YatraFormFieldIsRequired: r.IsRequired,
		YatraFormFieldOrder:      r.Order,
	}
}

type CreateCustomFieldRequest struct {
	Name       string   `json:"name" validate:"required,max=255"`
	Type       string   `json:"type" validate:"required,oneof=text number select"`
	IsMultiple bool     `json:"is_multiple"`
	Order      int      `json:"order" validate:"min=0"`
	Values     []string `json:"values" validate:"omitempty,dive,required"`
}

type CreateAccommodationRequest struct {
	PlaceName        string  `json:"place_name" validate:"required,max=255"`
	Address          *string `json:"address"`
	CheckinDatetime  string  `json:"checkin_datetime" validate:"required"`
	CheckoutDatetime string  `json:"checkout_datetime" validate:"required"`
	ContactPerson    *string `json:"contact_person" validate:"omitempty,max=255"`
	ContactNumber    *string `json:"contact_number" validate:"omitempty,max=50"`
	Notes            *string `json:"notes"`
}

func (r CreateAccommodationRequest) ToModel(yatraID uuid.UUID) (*model.YatraAccommodationModel, error) {
	checkin, err := time.Parse(time.RFC3339, r.CheckinDatetime)
	if err != nil {
		return nil, err
	}
	checkout, err := time.Parse(time.RFC3339, r.CheckoutDatetime)
	if err != nil {
		return nil, err
	}
	return &model.YatraAccommodationModel{
		YatraAccommodationYatraID:          yatraID,
		YatraAccommodationPlaceName:        r.PlaceName,
		YatraAccommodationAddress:          r.Address,
		YatraAccommodationCheckinDatetime:  checkin,
		YatraAccommodationCheckoutDatetime: checkout,
		YatraAccommodationContactPerson:    r.ContactPerson,
		YatraAccommodationContactNumber:    r.ContactNumber,
		YatraAccommodationNotes:            r.Notes,
	}, nil
}
