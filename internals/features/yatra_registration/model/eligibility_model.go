package model

import (
	"time"

	"github.com/google/uuid"
)

// One row per (yatra, profile) pair. The row existing at all means the
// devotee asked to go; the approved flag is the actual gate.
type YatraEligibilityModel struct {
	YatraEligibilityID        uuid.UUID `gorm:"column:yatra_eligibility_id;type:uuid;default:gen_random_uuid();primaryKey" json:"yatra_eligibility_id"`
	YatraEligibilityYatraID   uuid.UUID `gorm:"column:yatra_eligibility_yatra_id;type:uuid;not null;uniqueIndex:uq_yatra_eligibility_pair" json:"yatra_eligibility_yatra_id"`
	YatraEligibilityProfileID uuid.UUID `gorm:"column:yatra_eligibility_profile_id;type:uuid;not null;uniqueIndex:uq_yatra_eligibility_pair" json:"yatra_eligibility_profile_id"`

	YatraEligibilityIsApproved bool       `gorm:"column:yatra_eligibility_is_approved;not null;default:false" json:"yatra_eligibility_is_approved"`
	YatraEligibilityApprovedBy *uuid.UUID `gorm:"column:yatra_eligibility_approved_by;type:uuid" json:"yatra_eligibility_approved_by,omitempty"`
	YatraEligibilityApprovedAt *time.Time `gorm:"column:yatra_eligibility_approved_at" json:"yatra_eligibility_approved_at,omitempty"`

	YatraEligibilityCreatedAt time.Time `gorm:"column:yatra_eligibility_created_at;autoCreateTime" json:"yatra_eligibility_created_at"`
}

func (YatraEligibilityModel) TableName() string { return "yatra_eligibilities" }
