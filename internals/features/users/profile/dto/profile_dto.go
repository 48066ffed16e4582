package dto

import (
	"time"

	model "iysyatra_backend/internals/features/users/profile/model"
	service "iysyatra_backend/internals/features/users/profile/service"
)

type ProfileResponse struct {
	ProfileID         string     `json:"profile_id"`
	MemberID          int        `json:"member_id"`
	MemberIDFormatted string     `json:"member_id_formatted"`
	UserType          string     `json:"user_type"`
	MentorID          *string    `json:"mentor_id,omitempty"`
	FirstName         *string    `json:"first_name,omitempty"`
	LastName          *string    `json:"last_name,omitempty"`
	Dob               *time.Time `json:"dob,omitempty"`
	Gender            *string    `json:"gender,omitempty"`
	MaritalStatus     *string    `json:"marital_status,omitempty"`
	Mobile            *string    `json:"mobile,omitempty"`
	Country           *string    `json:"country,omitempty"`
	Center            *string    `json:"center,omitempty"`
	IsInitiated       bool       `json:"is_initiated"`
	InitiatedName     *string    `json:"initiated_name,omitempty"`
	SpiritualMaster   *string    `json:"spiritual_master,omitempty"`
	EmailConsent      bool       `json:"email_consent"`
	Address           *string    `json:"address,omitempty"`
	EmergencyContact  *string    `json:"emergency_contact,omitempty"`
	PictureURL        *string    `json:"picture_url,omitempty"`
	ChantingRounds    int        `json:"chanting_rounds"`
	CreatedAt         time.Time  `json:"created_at"`
}

func FromProfileModel(m model.ProfileModel) ProfileResponse {
	var mentorID *string
	if m.ProfileMentorID != nil {
		s := m.ProfileMentorID.String()
		mentorID = &s
	}
	return ProfileResponse{
		ProfileID:         m.ProfileID.String(),
		MemberID:          m.ProfileMemberID,
		MemberIDFormatted: service.FormatMemberID(m.ProfileMemberID),
		UserType:          m.ProfileUserType,
		MentorID:          mentorID,
		FirstName:         m.ProfileFirstName,
		LastName:          m.ProfileLastName,
		Dob:               m.ProfileDob,
		Gender:            m.ProfileGender,
		MaritalStatus:     m.ProfileMaritalStatus,
		Mobile:            m.ProfileMobile,
		Country:           m.ProfileCountry,
		Center:            m.ProfileCenter,
		IsInitiated:       m.ProfileIsInitiated,
		InitiatedName:     m.ProfileInitiatedName,
		SpiritualMaster:   m.ProfileSpiritualMaster,
		EmailConsent:      m.ProfileEmailConsent,
		Address:           m.ProfileAddress,
		EmergencyContact:  m.ProfileEmergencyContact,
		PictureURL:        m.ProfilePictureURL,
		ChantingRounds:    m.ProfileChantingRounds,
		CreatedAt:         m.ProfileCreatedAt,
	}
}

// UpdateProfileRequest: partial update, only non-nil fields apply.
type UpdateProfileRequest struct {
	FirstName        *string    `json:"first_name" validate:"omitempty,max=100"`
	LastName         *string    `json:"last_name" validate:"omitempty,max=100"`
	Dob              *time.Time `json:"dob"`
	Gender           *string    `json:"gender" validate:"omitempty,oneof=male female other"`
	MaritalStatus    *string    `json:"marital_status" validate:"omitempty,oneof=sannyasi grhastha others unmarried vanaprastha brahmachari_temple"`
	Mobile           *string    `json:"mobile" validate:"omitempty,max=15"`
	AadharCardNo     *string    `json:"aadhar_card_no" validate:"omitempty,len=12,numeric"`
	Country          *string    `json:"country" validate:"omitempty,max=100"`
	Center           *string    `json:"center" validate:"omitempty,max=150"`
	IsInitiated      *bool      `json:"is_initiated"`
	InitiatedName    *string    `json:"initiated_name" validate:"omitempty,max=255"`
	SpiritualMaster  *string    `json:"spiritual_master" validate:"omitempty,max=255"`
	InitiationDate   *time.Time `json:"initiation_date"`
	InitiationPlace  *string    `json:"initiation_place" validate:"omitempty,max=255"`
	EmailConsent     *bool      `json:"email_consent"`
	Address          *string    `json:"address"`
	EmergencyContact *string    `json:"emergency_contact" validate:"omitempty,max=255"`
	PictureURL       *string    `json:"picture_url"`
	ChantingRounds   *int       `json:"chanting_rounds" validate:"omitempty,min=0"`
}

// Patch builds the column patch map from the non-nil fields.
func (r UpdateProfileRequest) Patch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.FirstName != nil {
		patch["profile_first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		patch["profile_last_name"] = *r.LastName
	}
	if r.Dob != nil {
		patch["profile_dob"] = *r.Dob
	}
	if r.Gender != nil {
		patch["profile_gender"] = *r.Gender
	}
	if r.MaritalStatus != nil {
		patch["profile_marital_status"] = *r.MaritalStatus
	}
	if r.Mobile != nil {
		patch["profile_mobile"] = *r.Mobile
	}
	if r.AadharCardNo != nil {
		patch["profile_aadhar_card_no"] = *r.AadharCardNo
	}
	if r.Country != nil {
		patch["profile_country"] = *r.Country
	}
	if r.Center != nil {
		patch["profile_center"] = *r.Center
	}
	if r.IsInitiated != nil {
		patch["profile_is_initiated"] = *r.IsInitiated
	}
	if r.InitiatedName != nil {
		patch["profile_initiated_name"] = *r.InitiatedName
	}
	if r.SpiritualMaster != nil {
		patch["profile_spiritual_master"] = *r.SpiritualMaster
	}
	if r.InitiationDate != nil {
		patch["profile_initiation_date"] = *r.InitiationDate
	}
	if r.InitiationPlace != nil {
		patch["profile_initiation_place"] = *r.InitiationPlace
	}
	if r.EmailConsent != nil {
		patch["profile_email_consent"] = *r.EmailConsent
	}
	if r.Address != nil {
		patch["profile_address"] = *r.Address
	}
	if r.EmergencyContact != nil {
		patch["profile_emergency_contact"] = *r.EmergencyContact
	}
	if r.PictureURL != nil {
		patch["profile_picture_url"] = *r.PictureURL
	}
	if r.ChantingRounds != nil {
		patch["profile_chanting_rounds"] = *r.ChantingRounds
	}
	return patch
}
