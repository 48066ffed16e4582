//go:build integration

package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	usermodel "iysyatra_backend/internals/features/users/profile/model"
	regmodel "iysyatra_backend/internals/features/yatra_registration/model"
	helper "iysyatra_backend/internals/helpers"
	"iysyatra_backend/internals/testutil/pgtest"
)

type EligibilityServiceSuite struct {
	suite.Suite
	postgres *pgtest.PostgresContainer
	svc      *EligibilityService

	yatraID  uuid.UUID
	menteeID uuid.UUID
	mentorID uuid.UUID
}

func TestEligibilityServiceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(EligibilityServiceSuite))
}

func (s *EligibilityServiceSuite) SetupSuite() {
	s.postgres = pgtest.NewPostgresContainer(s.T(),
		&usermodel.ProfileModel{},
		&usermodel.MentorRequestModel{},
		&regmodel.YatraEligibilityModel{},
		&regmodel.YatraRegistrationModel{},
	)
	s.svc = NewEligibilityService(s.postgres.DB)
}

func (s *EligibilityServiceSuite) SetupTest() {
	// Truncate in dependency order
	err := s.postgres.TruncateTables(
		"yatra_registrations",
		"yatra_eligibilities",
		"mentor_requests",
		"profiles",
	)
	s.Require().NoError(err)

	db := s.postgres.DB
	mentee := usermodel.ProfileModel{ProfileMemberID: 251001, ProfileUserType: "devotee"}
	mentor := usermodel.ProfileModel{ProfileMemberID: 251002, ProfileUserType: "mentor"}
	s.Require().NoError(db.Create(&mentee).Error)
	s.Require().NoError(db.Create(&mentor).Error)
	s.menteeID = mentee.ProfileID
	s.mentorID = mentor.ProfileID
	s.yatraID = uuid.New()
}

func (s *EligibilityServiceSuite) approveMentorEdge() {
	now := time.Now().UTC()
	edge := usermodel.MentorRequestModel{
		MentorRequestFromProfileID: s.menteeID,
		MentorRequestToMentorID:    s.mentorID,
		MentorRequestIsApproved:    true,
		MentorRequestApprovedAt:    &now,
	}
	s.Require().NoError(s.postgres.DB.Create(&edge).Error)
}

func (s *EligibilityServiceSuite) assertAppCode(err error, code string) {
	s.Require().Error(err)
	var ae *helper.AppError
	s.Require().True(errors.As(err, &ae), "expected AppError, got %v", err)
	s.Equal(code, ae.Code)
}

func (s *EligibilityServiceSuite) TestRequestApprovalIsSelfOnly() {
	s.approveMentorEdge()

	stranger := uuid.New()
	_, err := s.svc.RequestApproval(s.yatraID, s.menteeID, stranger, false)
	s.assertAppCode(err, "PERMISSION_DENIED")

	// Staff may raise the pair for someone else.
	row, err := s.svc.RequestApproval(s.yatraID, s.menteeID, stranger, true)
	s.Require().NoError(err)
	s.Equal(s.menteeID, row.YatraEligibilityProfileID)
	s.False(row.YatraEligibilityIsApproved)
}

func (s *EligibilityServiceSuite) TestRequestApprovalNeedsApprovedMentor() {
	_, err := s.svc.RequestApproval(s.yatraID, s.menteeID, s.menteeID, false)
	s.assertAppCode(err, "PERMISSION_DENIED")

	// A pending mentor edge is not enough.
	edge := usermodel.MentorRequestModel{
		MentorRequestFromProfileID: s.menteeID,
		MentorRequestToMentorID:    s.mentorID,
	}
	s.Require().NoError(s.postgres.DB.Create(&edge).Error)
	_, err = s.svc.RequestApproval(s.yatraID, s.menteeID, s.menteeID, false)
	s.assertAppCode(err, "PERMISSION_DENIED")

	s.Require().NoError(s.postgres.DB.Model(&usermodel.MentorRequestModel{}).
		Where("mentor_request_id = ?", edge.MentorRequestID).
		Update("mentor_request_is_approved", true).Error)

	row, err := s.svc.RequestApproval(s.yatraID, s.menteeID, s.menteeID, false)
	s.Require().NoError(err)
	s.Equal(s.yatraID, row.YatraEligibilityYatraID)
	s.False(row.YatraEligibilityIsApproved)
}

func (s *EligibilityServiceSuite) TestRequestApprovalIdempotentWhilePending() {
	s.approveMentorEdge()

	first, err := s.svc.RequestApproval(s.yatraID, s.menteeID, s.menteeID, false)
	s.Require().NoError(err)

	second, err := s.svc.RequestApproval(s.yatraID, s.menteeID, s.menteeID, false)
	s.Require().NoError(err)
	s.Equal(first.YatraEligibilityID, second.YatraEligibilityID)

	var n int64
	s.Require().NoError(s.postgres.DB.Model(&regmodel.YatraEligibilityModel{}).
		Where("yatra_eligibility_yatra_id = ? AND yatra_eligibility_profile_id = ?", s.yatraID, s.menteeID).
		Count(&n).Error)
	s.Equal(int64(1), n)
}

func (s *EligibilityServiceSuite) TestRequestApprovalBlockedOnceApproved() {
	s.approveMentorEdge()

	row, err := s.svc.RequestApproval(s.yatraID, s.menteeID, s.menteeID, false)
	s.Require().NoError(err)
	_, err = s.svc.Approve(row.YatraEligibilityID, s.mentorID, false, time.Now().UTC())
	s.Require().NoError(err)

	_, err = s.svc.RequestApproval(s.yatraID, s.menteeID, s.menteeID, false)
	s.assertAppCode(err, "INVALID_STATE")
}

func (s *EligibilityServiceSuite) TestRequestApprovalBlockedOnceRegistered() {
	s.approveMentorEdge()

	reg := regmodel.YatraRegistrationModel{
		YatraRegistrationYatraID:       s.yatraID,
		YatraRegistrationRegisteredBy:  s.menteeID,
		YatraRegistrationRegisteredFor: s.menteeID,
		YatraRegistrationStatus:        regmodel.RegStatusPending,
	}
	s.Require().NoError(s.postgres.DB.Create(&reg).Error)

	_, err := s.svc.RequestApproval(s.yatraID, s.menteeID, s.menteeID, false)
	s.assertAppCode(err, "INVALID_STATE")
}
