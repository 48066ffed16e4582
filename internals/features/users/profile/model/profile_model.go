package model

import (
	"time"

	"github.com/google/uuid"
)

type ProfileModel struct {
	ProfileID uuid.UUID `gorm:"column:profile_id;type:uuid;default:gen_random_uuid();primaryKey" json:"profile_id"`

	// Sequential bucketed member id (YYCNNN). Assigned under lock, never
	// reused; reallocated when the profile moves between center buckets.
	ProfileMemberID int `gorm:"column:profile_member_id;uniqueIndex;not null" json:"profile_member_id"`

	// Tier: guest | devotee | mentor
	ProfileUserType string `gorm:"column:profile_user_type;type:varchar(20);not null;default:guest" json:"profile_user_type"`

	// Weak back-reference to the approved mentor (relation only, not
	// ownership: deleting the mentor nulls it).
	ProfileMentorID *uuid.UUID `gorm:"column:profile_mentor_id;type:uuid;index" json:"profile_mentor_id,omitempty"`

	ProfileFirstName *string    `gorm:"column:profile_first_name;type:varchar(100)" json:"profile_first_name,omitempty"`
	ProfileLastName  *string    `gorm:"column:profile_last_name;type:varchar(100)" json:"profile_last_name,omitempty"`
	ProfileDob       *time.Time `gorm:"column:profile_dob;type:date" json:"profile_dob,omitempty"`
	ProfileGender    *string    `gorm:"column:profile_gender;type:varchar(10)" json:"profile_gender,omitempty"`

	ProfileMaritalStatus *string `gorm:"column:profile_marital_status;type:varchar(20)" json:"profile_marital_status,omitempty"`
	ProfileMobile        *string `gorm:"column:profile_mobile;type:varchar(15)" json:"profile_mobile,omitempty"`
	ProfileAadharCardNo  *string `gorm:"column:profile_aadhar_card_no;type:varchar(12);uniqueIndex" json:"profile_aadhar_card_no,omitempty"`
	ProfileCountry       *string `gorm:"column:profile_country;type:varchar(100)" json:"profile_country,omitempty"`
	ProfileCenter        *string `gorm:"column:profile_center;type:varchar(150)" json:"profile_center,omitempty"`

	// Initiation details
	ProfileIsInitiated     bool       `gorm:"column:profile_is_initiated;not null;default:false" json:"profile_is_initiated"`
	ProfileInitiatedName   *string    `gorm:"column:profile_initiated_name;type:varchar(255)" json:"profile_initiated_name,omitempty"`
	ProfileSpiritualMaster *string    `gorm:"column:profile_spiritual_master;type:varchar(255)" json:"profile_spiritual_master,omitempty"`
	ProfileInitiationDate  *time.Time `gorm:"column:profile_initiation_date;type:date" json:"profile_initiation_date,omitempty"`
	ProfileInitiationPlace *string    `gorm:"column:profile_initiation_place;type:varchar(255)" json:"profile_initiation_place,omitempty"`

	ProfileEmailConsent     bool    `gorm:"column:profile_email_consent;not null;default:false" json:"profile_email_consent"`
	ProfileAddress          *string `gorm:"column:profile_address;type:text" json:"profile_address,omitempty"`
	ProfileEmergencyContact *string `gorm:"column:profile_emergency_contact;type:varchar(255)" json:"profile_emergency_contact,omitempty"`

	// Opaque locator for the profile picture; the blob lives in external
	// storage.
	ProfilePictureURL *string `gorm:"column:profile_picture_url;type:text" json:"profile_picture_url,omitempty"`

	ProfileChantingRounds int `gorm:"column:profile_chanting_rounds;not null;default:0" json:"profile_chanting_rounds"`

	ProfileCreatedAt time.Time `gorm:"column:profile_created_at;autoCreateTime" json:"profile_created_at"`

	Mentor *ProfileModel `gorm:"foreignKey:ProfileMentorID;references:ProfileID;constraint:OnDelete:SET NULL" json:"-"`
}

func (ProfileModel) TableName() string { return "profiles" }

// FullName for messages and exports.
func (p *ProfileModel) FullName() string {
	first, last := "", ""
	if p.ProfileFirstName != nil {
		first = *p.ProfileFirstName
	}
	if p.ProfileLastName != nil {
		last = *p.ProfileLastName
	}
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		return last
	}
}
