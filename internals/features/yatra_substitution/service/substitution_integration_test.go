//go:build integration

package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"

	usermodel "iysyatra_backend/internals/features/users/profile/model"
	yatramodel "iysyatra_backend/internals/features/yatra/model"
	regmodel "iysyatra_backend/internals/features/yatra_registration/model"
	submodel "iysyatra_backend/internals/features/yatra_substitution/model"
	helper "iysyatra_backend/internals/helpers"
	"iysyatra_backend/internals/testutil/pgtest"
)

type SubstitutionServiceSuite struct {
	suite.Suite
	postgres *pgtest.PostgresContainer
	svc      *SubstitutionService

	yatraID  uuid.UUID
	regID    uuid.UUID
	filerID  uuid.UUID
	holderID uuid.UUID
	targetID uuid.UUID
}

const targetMemberID = 251002

func TestSubstitutionServiceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SubstitutionServiceSuite))
}

func (s *SubstitutionServiceSuite) SetupSuite() {
	s.postgres = pgtest.NewPostgresContainer(s.T(),
		&usermodel.ProfileModel{},
		&yatramodel.YatraModel{},
		&yatramodel.YatraInstallmentModel{},
		&regmodel.YatraRegistrationModel{},
		&regmodel.YatraRegistrationInstallmentModel{},
		&regmodel.YatraEligibilityModel{},
		&regmodel.RegistrationAccommodationModel{},
		&regmodel.RegistrationJourneyModel{},
		&regmodel.RegistrationCustomFieldValueModel{},
		&submodel.SubstitutionRequestModel{},
	)
	s.svc = NewSubstitutionService(s.postgres.DB)
}

func (s *SubstitutionServiceSuite) SetupTest() {
	// Truncate in dependency order
	err := s.postgres.TruncateTables(
		"yatra_substitution_requests",
		"registration_custom_field_values",
		"registration_journeys",
		"registration_accommodations",
		"yatra_registration_installments",
		"yatra_eligibilities",
		"yatra_registrations",
		"yatra_installments",
		"yatras",
		"profiles",
	)
	s.Require().NoError(err)

	db := s.postgres.DB

	// The filer registered on the holder's behalf; the target is the
	// devotee taking over the seat.
	filer := usermodel.ProfileModel{ProfileMemberID: 251000, ProfileUserType: "mentor"}
	holder := usermodel.ProfileModel{ProfileMemberID: 251001, ProfileUserType: "devotee"}
	target := usermodel.ProfileModel{ProfileMemberID: targetMemberID, ProfileUserType: "devotee"}
	s.Require().NoError(db.Create(&filer).Error)
	s.Require().NoError(db.Create(&holder).Error)
	s.Require().NoError(db.Create(&target).Error)
	s.filerID = filer.ProfileID
	s.holderID = holder.ProfileID
	s.targetID = target.ProfileID

	yatra := yatramodel.YatraModel{
		YatraTitle:              "Govardhan Parikrama",
		YatraDescription:        "Purnima day parikrama",
		YatraStartDate:          time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		YatraEndDate:            time.Date(2026, 10, 7, 0, 0, 0, 0, time.UTC),
		YatraLocation:           "Govardhan",
		YatraCapacity:           150,
		YatraIsSubstitutionOpen: true,
	}
	s.Require().NoError(db.Create(&yatra).Error)
	s.yatraID = yatra.YatraID

	schedule := []yatramodel.YatraInstallmentModel{
		{YatraInstallmentYatraID: s.yatraID, YatraInstallmentLabel: "Advance", YatraInstallmentAmountINR: 3000, YatraInstallmentOrder: 1},
		{YatraInstallmentYatraID: s.yatraID, YatraInstallmentLabel: "Balance", YatraInstallmentAmountINR: 3500, YatraInstallmentOrder: 2},
	}
	s.Require().NoError(db.Create(&schedule).Error)

	reg := regmodel.YatraRegistrationModel{
		YatraRegistrationYatraID:       s.yatraID,
		YatraRegistrationRegisteredBy:  s.filerID,
		YatraRegistrationRegisteredFor: s.holderID,
		YatraRegistrationStatus:        regmodel.RegStatusPartial,
		YatraRegistrationFormData:      datatypes.JSONMap{"city": "Pune"},
	}
	s.Require().NoError(db.Create(&reg).Error)
	s.regID = reg.YatraRegistrationID

	// Advance verified, balance still open.
	paymentID := uuid.New()
	paidAt := time.Now().UTC().Add(-48 * time.Hour)
	ledger := []regmodel.YatraRegistrationInstallmentModel{
		{
			YatraRegistrationInstallmentRegistrationID: s.regID,
			YatraRegistrationInstallmentInstallmentID:  schedule[0].YatraInstallmentID,
			YatraRegistrationInstallmentPaymentID:      &paymentID,
			YatraRegistrationInstallmentIsPaid:         true,
			YatraRegistrationInstallmentPaidAt:         &paidAt,
		},
		{
			YatraRegistrationInstallmentRegistrationID: s.regID,
			YatraRegistrationInstallmentInstallmentID:  schedule[1].YatraInstallmentID,
		},
	}
	s.Require().NoError(db.Create(&ledger).Error)

	eligibility := regmodel.YatraEligibilityModel{
		YatraEligibilityYatraID:    s.yatraID,
		YatraEligibilityProfileID:  s.targetID,
		YatraEligibilityIsApproved: true,
	}
	s.Require().NoError(db.Create(&eligibility).Error)

	s.Require().NoError(db.Create(&regmodel.RegistrationAccommodationModel{
		RegistrationAccommodationRegistrationID:  s.regID,
		RegistrationAccommodationAccommodationID: uuid.New(),
	}).Error)
	s.Require().NoError(db.Create(&regmodel.RegistrationJourneyModel{
		RegistrationJourneyRegistrationID: s.regID,
		RegistrationJourneyJourneyID:      uuid.New(),
	}).Error)
	s.Require().NoError(db.Create(&[]regmodel.RegistrationCustomFieldValueModel{
		{RegistrationCustomFieldValueRegistrationID: s.regID, RegistrationCustomFieldValueValueID: uuid.New()},
		{RegistrationCustomFieldValueRegistrationID: s.regID, RegistrationCustomFieldValueValueID: uuid.New()},
	}).Error)
}

func (s *SubstitutionServiceSuite) loadRegistration(id uuid.UUID) regmodel.YatraRegistrationModel {
	var reg regmodel.YatraRegistrationModel
	s.Require().NoError(s.postgres.DB.
		Where("yatra_registration_id = ?", id).
		First(&reg).Error)
	return reg
}

func (s *SubstitutionServiceSuite) countByRegistration(table, column string, regID uuid.UUID) int64 {
	var n int64
	s.Require().NoError(s.postgres.DB.Table(table).
		Where(column+" = ?", regID).
		Count(&n).Error)
	return n
}

func (s *SubstitutionServiceSuite) assertAppCode(err error, code string) {
	s.Require().Error(err)
	var ae *helper.AppError
	s.Require().True(errors.As(err, &ae), "expected AppError, got %v", err)
	s.Equal(code, ae.Code)
}

func (s *SubstitutionServiceSuite) TestAcceptMigratesRegistrationHistory() {
	now := time.Now().UTC()
	req, code, err := s.svc.Create(s.regID, s.holderID, targetMemberID, now)
	s.Require().NoError(err)
	s.Require().Len(code, 2)

	resolved, err := s.svc.Respond(req.YatraSubstitutionRequestID, s.targetID, "accept", code, now.Add(time.Minute))
	s.Require().NoError(err)
	s.Require().NotNil(resolved)
	s.Equal(submodel.SubStatusAccepted, resolved.YatraSubstitutionRequestStatus)
	s.Require().NotNil(resolved.YatraSubstitutionRequestNewRegistrationID)

	original := s.loadRegistration(s.regID)
	s.Equal(regmodel.RegStatusSubstituted, original.YatraRegistrationStatus)
	s.Require().NotNil(original.YatraRegistrationSubstitutedTo)
	s.Equal(s.targetID, *original.YatraRegistrationSubstitutedTo)
	s.NotNil(original.YatraRegistrationSubstitutionDate)

	clone := s.loadRegistration(*resolved.YatraSubstitutionRequestNewRegistrationID)
	s.Equal(s.targetID, clone.YatraRegistrationRegisteredFor)
	// The audit trail keeps who originally filed the form.
	s.Equal(s.filerID, clone.YatraRegistrationRegisteredBy)
	s.Equal(regmodel.RegStatusPartial, clone.YatraRegistrationStatus)
	s.Equal("Pune", clone.YatraRegistrationFormData["city"])

	// Every dependent row moved; the origin is a pure audit stub.
	moves := []struct {
		table  string
		column string
		count  int64
	}{
		{"yatra_registration_installments", "yatra_registration_installment_registration_id", 2},
		{"registration_accommodations", "registration_accommodation_registration_id", 1},
		{"registration_journeys", "registration_journey_registration_id", 1},
		{"registration_custom_field_values", "registration_custom_field_value_registration_id", 2},
	}
	for _, m := range moves {
		s.Equal(int64(0), s.countByRegistration(m.table, m.column, s.regID), m.table)
		s.Equal(m.count, s.countByRegistration(m.table, m.column, clone.YatraRegistrationID), m.table)
	}
}

func (s *SubstitutionServiceSuite) TestAcceptWrongCodeLeavesStateUntouched() {
	now := time.Now().UTC()
	req, code, err := s.svc.Create(s.regID, s.holderID, targetMemberID, now)
	s.Require().NoError(err)

	wrong := "00"
	if code == wrong {
		wrong = "01"
	}
	_, err = s.svc.Respond(req.YatraSubstitutionRequestID, s.targetID, "accept", wrong, now.Add(time.Minute))
	s.assertAppCode(err, "CODE_MISMATCH")

	s.Equal(regmodel.RegStatusPartial, s.loadRegistration(s.regID).YatraRegistrationStatus)

	var pending submodel.SubstitutionRequestModel
	s.Require().NoError(s.postgres.DB.
		Where("yatra_substitution_request_id = ?", req.YatraSubstitutionRequestID).
		First(&pending).Error)
	s.Equal(submodel.SubStatusPending, pending.YatraSubstitutionRequestStatus)

	var targetRegs int64
	s.Require().NoError(s.postgres.DB.Model(&regmodel.YatraRegistrationModel{}).
		Where("yatra_registration_registered_for = ?", s.targetID).
		Count(&targetRegs).Error)
	s.Equal(int64(0), targetRegs)
}

func (s *SubstitutionServiceSuite) TestRespondAfterExpiryDeletesRequest() {
	now := time.Now().UTC()
	req, code, err := s.svc.Create(s.regID, s.holderID, targetMemberID, now)
	s.Require().NoError(err)

	_, err = s.svc.Respond(req.YatraSubstitutionRequestID, s.targetID, "accept", code, now.Add(CodeTTL+time.Minute))
	s.assertAppCode(err, "EXPIRED_TOKEN")

	var n int64
	s.Require().NoError(s.postgres.DB.Model(&submodel.SubstitutionRequestModel{}).
		Where("yatra_substitution_request_id = ?", req.YatraSubstitutionRequestID).
		Count(&n).Error)
	s.Equal(int64(0), n)
}

func (s *SubstitutionServiceSuite) TestRejectDeletesRequest() {
	now := time.Now().UTC()
	req, _, err := s.svc.Create(s.regID, s.holderID, targetMemberID, now)
	s.Require().NoError(err)

	resolved, err := s.svc.Respond(req.YatraSubstitutionRequestID, s.targetID, "reject", "", now.Add(time.Minute))
	s.Require().NoError(err)
	s.Nil(resolved)

	var n int64
	s.Require().NoError(s.postgres.DB.Model(&submodel.SubstitutionRequestModel{}).
		Where("yatra_substitution_request_id = ?", req.YatraSubstitutionRequestID).
		Count(&n).Error)
	s.Equal(int64(0), n)
}

func (s *SubstitutionServiceSuite) TestCreateRequiresVerifiedInstallment() {
	s.Require().NoError(s.postgres.DB.Model(&regmodel.YatraRegistrationInstallmentModel{}).
		Where("yatra_registration_installment_registration_id = ?", s.regID).
		Update("yatra_registration_installment_is_paid", false).Error)

	_, _, err := s.svc.Create(s.regID, s.holderID, targetMemberID, time.Now().UTC())
	s.assertAppCode(err, "INVALID_STATE")
}

func (s *SubstitutionServiceSuite) TestCreateBlocksSecondPendingRequest() {
	now := time.Now().UTC()
	_, _, err := s.svc.Create(s.regID, s.holderID, targetMemberID, now)
	s.Require().NoError(err)

	_, _, err = s.svc.Create(s.regID, s.holderID, targetMemberID, now.Add(time.Minute))
	s.assertAppCode(err, "INVALID_STATE")
}
