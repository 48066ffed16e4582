package model

import (
	"time"

	"github.com/google/uuid"
)

// MentorRequestModel is the directed edge mentee -> mentor. The decision
// toggles in place (approve/unapprove overwrite, no history); both
// transitions are idempotent.
type MentorRequestModel struct {
	MentorRequestID uuid.UUID `gorm:"column:mentor_request_id;type:uuid;default:gen_random_uuid();primaryKey" json:"mentor_request_id"`

	MentorRequestFromProfileID uuid.UUID `gorm:"column:mentor_request_from_profile_id;type:uuid;not null;uniqueIndex:uq_mentor_request_pair" json:"mentor_request_from_profile_id"`
	MentorRequestToMentorID    uuid.UUID `gorm:"column:mentor_request_to_mentor_id;type:uuid;not null;uniqueIndex:uq_mentor_request_pair" json:"mentor_request_to_mentor_id"`

	MentorRequestMessage *string `gorm:"column:mentor_request_message;type:text" json:"mentor_request_message,omitempty"`

	MentorRequestIsApproved bool       `gorm:"column:mentor_request_is_approved;not null;default:false" json:"mentor_request_is_approved"`
	MentorRequestApprovedAt *time.Time `gorm:"column:mentor_request_approved_at" json:"mentor_request_approved_at,omitempty"`

	MentorRequestCreatedAt time.Time `gorm:"column:mentor_request_created_at;autoCreateTime" json:"mentor_request_created_at"`

	FromProfile *ProfileModel `gorm:"foreignKey:MentorRequestFromProfileID;references:ProfileID" json:"-"`
	ToMentor    *ProfileModel `gorm:"foreignKey:MentorRequestToMentorID;references:ProfileID" json:"-"`
}

func (MentorRequestModel) TableName() string { return "mentor_requests" }
