//go:build integration

package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	paymodel "iysyatra_backend/internals/features/payment/model"
	yatramodel "iysyatra_backend/internals/features/yatra/model"
	regmodel "iysyatra_backend/internals/features/yatra_registration/model"
	helper "iysyatra_backend/internals/helpers"
	"iysyatra_backend/internals/testutil/pgtest"
)

type ReconcileServiceSuite struct {
	suite.Suite
	postgres *pgtest.PostgresContainer
	svc      *ReconcileService

	yatraID   uuid.UUID
	regID     uuid.UUID
	pilgrimID uuid.UUID
	ledgerIDs []uuid.UUID
}

func TestReconcileServiceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ReconcileServiceSuite))
}

func (s *ReconcileServiceSuite) SetupSuite() {
	s.postgres = pgtest.NewPostgresContainer(s.T(),
		&yatramodel.YatraModel{},
		&yatramodel.YatraInstallmentModel{},
		&regmodel.YatraRegistrationModel{},
		&regmodel.YatraRegistrationInstallmentModel{},
		&paymodel.PaymentModel{},
	)
	s.svc = NewReconcileService(s.postgres.DB)
}

func (s *ReconcileServiceSuite) SetupTest() {
	// Truncate in dependency order
	err := s.postgres.TruncateTables(
		"payments",
		"yatra_registration_installments",
		"yatra_registrations",
		"yatra_installments",
		"yatras",
	)
	s.Require().NoError(err)

	db := s.postgres.DB
	s.pilgrimID = uuid.New()

	yatra := yatramodel.YatraModel{
		YatraTitle:       "Vraja Mandala Parikrama",
		YatraDescription: "Kartik month parikrama",
		YatraStartDate:   time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		YatraEndDate:     time.Date(2026, 11, 10, 0, 0, 0, 0, time.UTC),
		YatraLocation:    "Vrindavan",
		YatraCapacity:    200,
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
		YatraRegistrationRegisteredBy:  s.pilgrimID,
		YatraRegistrationRegisteredFor: s.pilgrimID,
		YatraRegistrationStatus:        regmodel.RegStatusPending,
	}
	s.Require().NoError(db.Create(&reg).Error)
	s.regID = reg.YatraRegistrationID

	s.ledgerIDs = nil
	for _, inst := range schedule {
		row := regmodel.YatraRegistrationInstallmentModel{
			YatraRegistrationInstallmentRegistrationID: s.regID,
			YatraRegistrationInstallmentInstallmentID:  inst.YatraInstallmentID,
		}
		s.Require().NoError(db.Create(&row).Error)
		s.ledgerIDs = append(s.ledgerIDs, row.YatraRegistrationInstallmentID)
	}
}

func (s *ReconcileServiceSuite) regStatus() string {
	var reg regmodel.YatraRegistrationModel
	s.Require().NoError(s.postgres.DB.
		Where("yatra_registration_id = ?", s.regID).
		First(&reg).Error)
	return reg.YatraRegistrationStatus
}

func (s *ReconcileServiceSuite) ledgerRows() []regmodel.YatraRegistrationInstallmentModel {
	var rows []regmodel.YatraRegistrationInstallmentModel
	s.Require().NoError(s.postgres.DB.
		Where("yatra_registration_installment_registration_id = ?", s.regID).
		Order("yatra_registration_installment_id").
		Find(&rows).Error)
	return rows
}

func (s *ReconcileServiceSuite) loadPayment(id uuid.UUID) paymodel.PaymentModel {
	var p paymodel.PaymentModel
	s.Require().NoError(s.postgres.DB.Where("payment_id = ?", id).First(&p).Error)
	return p
}

func (s *ReconcileServiceSuite) assertAppCode(err error, code string) {
	s.Require().Error(err)
	var ae *helper.AppError
	s.Require().True(errors.As(err, &ae), "expected AppError, got %v", err)
	s.Equal(code, ae.Code)
}

func (s *ReconcileServiceSuite) TestSubmitRejectsDuplicateTransaction() {
	_, err := s.svc.Submit("UTR-7001", 3000, nil, s.pilgrimID, s.ledgerIDs[:1])
	s.Require().NoError(err)
	s.Equal(regmodel.RegStatusPartial, s.regStatus())

	_, err = s.svc.Submit("UTR-7001", 3500, nil, s.pilgrimID, s.ledgerIDs[1:])
	s.assertAppCode(err, "DUPLICATE_TRANSACTION")

	// The second installment stays unlinked.
	rows := s.ledgerRows()
	linked := 0
	for _, row := range rows {
		if row.YatraRegistrationInstallmentPaymentID != nil {
			linked++
		}
	}
	s.Equal(1, linked)
}

func (s *ReconcileServiceSuite) TestApproveTwiceKeepsOriginalStamps() {
	payment, err := s.svc.Submit("UTR-7002", 6500, nil, s.pilgrimID, s.ledgerIDs)
	s.Require().NoError(err)

	verifier := uuid.New()
	firstNow := time.Now().UTC()
	s.Require().NoError(s.svc.Approve(payment.PaymentID, verifier, nil, firstNow))
	s.Equal(regmodel.RegStatusPaid, s.regStatus())

	before := s.ledgerRows()
	paymentBefore := s.loadPayment(payment.PaymentID)

	// A second approve an hour later must be a no-op, not a restamp.
	s.Require().NoError(s.svc.Approve(payment.PaymentID, uuid.New(), nil, firstNow.Add(time.Hour)))

	after := s.ledgerRows()
	s.Require().Len(after, len(before))
	for i := range before {
		s.Require().NotNil(after[i].YatraRegistrationInstallmentPaidAt)
		s.True(before[i].YatraRegistrationInstallmentPaidAt.Equal(*after[i].YatraRegistrationInstallmentPaidAt))
		s.True(before[i].YatraRegistrationInstallmentVerifiedAt.Equal(*after[i].YatraRegistrationInstallmentVerifiedAt))
		s.Equal(verifier, *after[i].YatraRegistrationInstallmentVerifiedBy)
		s.WithinDuration(firstNow, *after[i].YatraRegistrationInstallmentPaidAt, time.Second)
	}

	paymentAfter := s.loadPayment(payment.PaymentID)
	s.Equal(paymodel.PaymentStatusVerified, paymentAfter.PaymentStatus)
	s.Equal(verifier, *paymentAfter.PaymentProcessedBy)
	s.True(paymentBefore.PaymentProcessedAt.Equal(*paymentAfter.PaymentProcessedAt))
	s.Equal(regmodel.RegStatusPaid, s.regStatus())
}

func (s *ReconcileServiceSuite) TestUnderReviewThenApproveRestoresPaid() {
	payment, err := s.svc.Submit("UTR-7003", 6500, nil, s.pilgrimID, s.ledgerIDs)
	s.Require().NoError(err)

	verifier := uuid.New()
	s.Require().NoError(s.svc.Approve(payment.PaymentID, verifier, nil, time.Now().UTC()))
	s.Equal(regmodel.RegStatusPaid, s.regStatus())

	s.Require().NoError(s.svc.MarkUnderReview(payment.PaymentID))
	s.Equal(regmodel.RegStatusPartial, s.regStatus())
	queued := s.loadPayment(payment.PaymentID)
	s.Equal(paymodel.PaymentStatusUnderReview, queued.PaymentStatus)
	s.Nil(queued.PaymentProcessedBy)
	for _, row := range s.ledgerRows() {
		s.False(row.YatraRegistrationInstallmentIsPaid)
		s.Nil(row.YatraRegistrationInstallmentVerifiedBy)
	}

	s.Require().NoError(s.svc.Approve(payment.PaymentID, verifier, nil, time.Now().UTC()))
	s.Equal(regmodel.RegStatusPaid, s.regStatus())
	for _, row := range s.ledgerRows() {
		s.True(row.YatraRegistrationInstallmentIsPaid)
	}
}

func (s *ReconcileServiceSuite) TestApproveRejectApproveConverges() {
	payment, err := s.svc.Submit("UTR-7004", 6500, nil, s.pilgrimID, s.ledgerIDs)
	s.Require().NoError(err)

	verifier := uuid.New()
	s.Require().NoError(s.svc.Approve(payment.PaymentID, verifier, nil, time.Now().UTC()))
	s.Equal(regmodel.RegStatusPaid, s.regStatus())

	s.Require().NoError(s.svc.Reject(payment.PaymentID, verifier, nil, time.Now().UTC()))
	s.Equal(regmodel.RegStatusPartial, s.regStatus())
	for _, row := range s.ledgerRows() {
		s.False(row.YatraRegistrationInstallmentIsPaid)
		// A rejection is itself a verified fact, the stamp stays.
		s.NotNil(row.YatraRegistrationInstallmentVerifiedBy)
	}

	s.Require().NoError(s.svc.Approve(payment.PaymentID, verifier, nil, time.Now().UTC()))
	s.Equal(regmodel.RegStatusPaid, s.regStatus())
	s.Equal(paymodel.PaymentStatusVerified, s.loadPayment(payment.PaymentID).PaymentStatus)
	for _, row := range s.ledgerRows() {
		s.True(row.YatraRegistrationInstallmentIsPaid)
	}
}
