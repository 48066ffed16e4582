package dto

import (
	"time"

	model "iysyatra_backend/internals/features/users/profile/model"
)

type CreateMentorRequestRequest struct {
	ToMentorMemberID int     `json:"to_mentor_member_id" validate:"required,min=1"`
	Message          *string `json:"message" validate:"omitempty,max=2000"`
}

type MentorRequestResponse struct {
	MentorRequestID string     `json:"mentor_request_id"`
	FromProfileID   string     `json:"from_profile_id"`
	ToMentorID      string     `json:"to_mentor_id"`
	Message         *string    `json:"message,omitempty"`
	IsApproved      bool       `json:"is_approved"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func FromMentorRequestModel(m model.MentorRequestModel) MentorRequestResponse {
	return MentorRequestResponse{
		MentorRequestID: m.MentorRequestID.String(),
		FromProfileID:   m.MentorRequestFromProfileID.String(),
		ToMentorID:      m.MentorRequestToMentorID.String(),
		Message:         m.MentorRequestMessage,
		IsApproved:      m.MentorRequestIsApproved,
		ApprovedAt:      m.MentorRequestApprovedAt,
		CreatedAt:       m.MentorRequestCreatedAt,
	}
}

func FromMentorRequestModels(list []model.MentorRequestModel) []MentorRequestResponse {
	out := make([]MentorRequestResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMentorRequestModel(m))
	}
	return out
}
