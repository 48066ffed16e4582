package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userservice "iysyatra_backend/internals/features/users/profile/service"
	yatramodel "iysyatra_backend/internals/features/yatra/model"
	regmodel "iysyatra_backend/internals/features/yatra_registration/model"
	regservice "iysyatra_backend/internals/features/yatra_registration/service"
	submodel "iysyatra_backend/internals/features/yatra_substitution/model"
	helper "iysyatra_backend/internals/helpers"
)

// CodeTTL bounds how long the relayed code stays valid.
const CodeTTL = 30 * time.Minute

type SubstitutionService struct {
	DB *gorm.DB
}

func NewSubstitutionService(db *gorm.DB) *SubstitutionService {
	return &SubstitutionService{DB: db}
}

/* ======================= CREATE ======================= */

// Create raises a handoff request and returns it with the one-time
// plaintext code. Only the registration's owner may start one, the
// registration must be paid or partial with at least one verified
// installment, and the yatra's substitution window must be open.
func (s *SubstitutionService) Create(registrationID, actorID uuid.UUID, targetMemberID int, now time.Time) (*submodel.SubstitutionRequestModel, string, error) {
	var reg regmodel.YatraRegistrationModel
	if err := s.DB.Where("yatra_registration_id = ?", registrationID).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", helper.ErrNotFound("registration not found")
		}
		return nil, "", err
	}

	if reg.YatraRegistrationRegisteredFor != actorID && reg.YatraRegistrationRegisteredBy != actorID {
		return nil, "", helper.ErrPermissionDenied("not your registration")
	}
	if reg.YatraRegistrationStatus != regmodel.RegStatusPaid && reg.YatraRegistrationStatus != regmodel.RegStatusPartial {
		return nil, "", helper.ErrInvalidState("only a paid or partially paid registration can be substituted")
	}

	var yatra yatramodel.YatraModel
	if err := s.DB.Where("yatra_id = ?", reg.YatraRegistrationYatraID).First(&yatra).Error; err != nil {
		return nil, "", err
	}
	if !yatra.YatraIsSubstitutionOpen {
		return nil, "", helper.ErrInvalidState("substitution window is closed for this yatra")
	}

	amountPaid, verifiedCount, err := verifiedAmountPaid(s.DB, registrationID)
	if err != nil {
		return nil, "", err
	}
	if verifiedCount == 0 {
		return nil, "", helper.ErrInvalidState("at least one installment must be verified before substitution")
	}

	target, err := userservice.NewProfileService(s.DB).GetByMemberID(targetMemberID)
	if err != nil {
		return nil, "", err
	}
	if target.ProfileID == reg.YatraRegistrationRegisteredFor {
		return nil, "", helper.ErrInvalidState("target already holds this registration")
	}

	// Stale pending rows are swept here rather than by a scheduler.
	if err := s.DB.
		Where("yatra_substitution_request_registration_id = ?", registrationID).
		Where("yatra_substitution_request_status = ?", submodel.SubStatusPending).
		Where("yatra_substitution_request_expires_at <= ?", now).
		Delete(&submodel.SubstitutionRequestModel{}).Error; err != nil {
		return nil, "", err
	}

	var live int64
	if err := s.DB.Model(&submodel.SubstitutionRequestModel{}).
		Where("yatra_substitution_request_registration_id = ?", registrationID).
		Where("yatra_substitution_request_status = ?", submodel.SubStatusPending).
		Where("yatra_substitution_request_expires_at > ?", now).
		Count(&live).Error; err != nil {
		return nil, "", err
	}
	if live > 0 {
		return nil, "", helper.ErrInvalidState("a substitution request is already pending for this registration")
	}

	code, hash, err := generateCode()
	if err != nil {
		return nil, "", err
	}

	row := submodel.SubstitutionRequestModel{
		YatraSubstitutionRequestRegistrationID:  registrationID,
		YatraSubstitutionRequestInitiatorID:     actorID,
		YatraSubstitutionRequestTargetProfileID: target.ProfileID,
		YatraSubstitutionRequestCodeHash:        hash,
		YatraSubstitutionRequestStatus:          submodel.SubStatusPending,
		YatraSubstitutionRequestExpiresAt:       now.Add(CodeTTL),
		YatraSubstitutionRequestAmountPaidINR:   amountPaid,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return nil, "", err
	}
	return &row, code, nil
}

/* ======================= RESPOND ======================= */

// Respond resolves a pending request as the target profile. An expired
// request is deleted on sight. Reject deletes the row. Accept verifies
// the relayed code, requires the target to hold eligibility approval
// for the same yatra, and migrates the registration in one
// transaction.
func (s *SubstitutionService) Respond(requestID, actorID uuid.UUID, action, code string, now time.Time) (*submodel.SubstitutionRequestModel, error) {
	var req submodel.SubstitutionRequestModel
	if err := s.DB.Where("yatra_substitution_request_id = ?", requestID).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("substitution request not found")
		}
		return nil, err
	}

	if req.YatraSubstitutionRequestTargetProfileID != actorID {
		return nil, helper.ErrPermissionDenied("only the target profile may respond")
	}
	if req.YatraSubstitutionRequestStatus != submodel.SubStatusPending {
		return nil, helper.ErrInvalidState("substitution request already resolved")
	}

	if !now.Before(req.YatraSubstitutionRequestExpiresAt) {
		if err := s.DB.Delete(&submodel.SubstitutionRequestModel{}, "yatra_substitution_request_id = ?", requestID).Error; err != nil {
			return nil, err
		}
		return nil, helper.ErrExpiredToken("substitution code has expired")
	}

	switch action {
	case "reject":
		if err := s.DB.Delete(&submodel.SubstitutionRequestModel{}, "yatra_substitution_request_id = ?", requestID).Error; err != nil {
			return nil, err
		}
		return nil, nil
	case "accept":
		return s.accept(&req, code, now)
	default:
		return nil, helper.ErrBadRequest("action must be accept or reject")
	}
}

func (s *SubstitutionService) accept(req *submodel.SubstitutionRequestModel, code string, now time.Time) (*submodel.SubstitutionRequestModel, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(req.YatraSubstitutionRequestCodeHash), []byte(code)); err != nil {
		return nil, helper.ErrCodeMismatch("wrong substitution code")
	}

	var reg regmodel.YatraRegistrationModel
	if err := s.DB.Where("yatra_registration_id = ?", req.YatraSubstitutionRequestRegistrationID).First(&reg).Error; err != nil {
		return nil, err
	}
	if reg.YatraRegistrationStatus == regmodel.RegStatusSubstituted {
		return nil, helper.ErrInvalidState("registration was already substituted")
	}

	approved, err := regservice.IsApproved(s.DB, reg.YatraRegistrationYatraID, req.YatraSubstitutionRequestTargetProfileID)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, helper.ErrPermissionDenied("target profile is not eligibility-approved for this yatra")
	}

	// The whole migration is one transaction: a half-moved registration
	// (installments reassigned, accommodation not) cannot be repaired.
	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// registered_by carries over: the audit trail keeps who originally
	// filed the form even though the pilgrim changes.
	newReg := regmodel.YatraRegistrationModel{
		YatraRegistrationYatraID:       reg.YatraRegistrationYatraID,
		YatraRegistrationRegisteredBy:  reg.YatraRegistrationRegisteredBy,
		YatraRegistrationRegisteredFor: req.YatraSubstitutionRequestTargetProfileID,
		YatraRegistrationStatus:        reg.YatraRegistrationStatus,
		YatraRegistrationFormData:      reg.YatraRegistrationFormData,
	}
	if err := tx.Create(&newReg).Error; err != nil {
		tx.Rollback()
		if helper.IsUniqueViolation(err) {
			return nil, helper.ErrInvalidState("target already registered for this yatra")
		}
		return nil, err
	}

	if err := tx.Model(&regmodel.YatraRegistrationModel{}).
		Where("yatra_registration_id = ?", reg.YatraRegistrationID).
		Updates(map[string]interface{}{
			"yatra_registration_status":            regmodel.RegStatusSubstituted,
			"yatra_registration_substituted_to":    req.YatraSubstitutionRequestTargetProfileID,
			"yatra_registration_substitution_date": now,
		}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// History moves with the person: rows are reassigned in place, the
	// origin registration becomes a pure audit stub.
	reassignments := []struct {
		table  string
		column string
	}{
		{"yatra_registration_installments", "yatra_registration_installment_registration_id"},
		{"registration_accommodations", "registration_accommodation_registration_id"},
		{"registration_journeys", "registration_journey_registration_id"},
		{"registration_custom_field_values", "registration_custom_field_value_registration_id"},
	}
	for _, r := range reassignments {
		if err := tx.Table(r.table).
			Where(r.column+" = ?", reg.YatraRegistrationID).
			Update(r.column, newReg.YatraRegistrationID).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Model(&submodel.SubstitutionRequestModel{}).
		Where("yatra_substitution_request_id = ?", req.YatraSubstitutionRequestID).
		Updates(map[string]interface{}{
			"yatra_substitution_request_status":              submodel.SubStatusAccepted,
			"yatra_substitution_request_new_registration_id": newReg.YatraRegistrationID,
			"yatra_substitution_request_responded_at":        now,
		}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	req.YatraSubstitutionRequestStatus = submodel.SubStatusAccepted
	req.YatraSubstitutionRequestNewRegistrationID = &newReg.YatraRegistrationID
	req.YatraSubstitutionRequestRespondedAt = &now
	return req, nil
}

// verifiedAmountPaid sums the schedule amounts of the registration's
// verified installments.
func verifiedAmountPaid(db *gorm.DB, registrationID uuid.UUID) (int, int64, error) {
	var verifiedCount int64
	if err := db.Model(&regmodel.YatraRegistrationInstallmentModel{}).
		Where("yatra_registration_installment_registration_id = ?", registrationID).
		Where("yatra_registration_installment_is_paid = TRUE").
		Count(&verifiedCount).Error; err != nil {
		return 0, 0, err
	}

	var total struct {
		Sum int
	}
	if err := db.Table("yatra_registration_installments AS ri").
		Joins("JOIN yatra_installments yi ON yi.yatra_installment_id = ri.yatra_registration_installment_installment_id").
		Where("ri.yatra_registration_installment_registration_id = ?", registrationID).
		Where("ri.yatra_registration_installment_is_paid = TRUE").
		Select("COALESCE(SUM(yi.yatra_installment_amount_inr), 0) AS sum").
		Scan(&total).Error; err != nil {
		return 0, 0, err
	}
	return total.Sum, verifiedCount, nil
}

func generateCode() (string, string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100))
	if err != nil {
		return "", "", err
	}
	code := fmt.Sprintf("%02d", n.Int64())
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return code, string(hash), nil
}
