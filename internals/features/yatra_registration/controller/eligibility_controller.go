package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "iysyatra_backend/internals/features/yatra_registration/dto"
	model "iysyatra_backend/internals/features/yatra_registration/model"
	service "iysyatra_backend/internals/features/yatra_registration/service"
	helper "iysyatra_backend/internals/helpers"
)

type EligibilityController struct {
	DB      *gorm.DB
	Service *service.EligibilityService
}

func NewEligibilityController(db *gorm.DB) *EligibilityController {
	return &EligibilityController{DB: db, Service: service.NewEligibilityService(db)}
}

// POST /api/u/eligibilities
// Raises the pending (yatra, profile) pair. Idempotent.
func (h *EligibilityController) RequestApproval(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.RequestEligibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	yatraID, err := uuid.Parse(req.YatraID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid yatra id")
	}
	profileID := actorID
	if req.ProfileID != nil && *req.ProfileID != "" {
		profileID, err = uuid.Parse(*req.ProfileID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid profile id")
		}
	}

	row, err := h.Service.RequestApproval(yatraID, profileID, actorID, helper.IsStaffFromToken(c))
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "eligibility requested", dto.FromEligibilityModel(*row))
}

// GET /api/u/eligibilities?yatra_id=
// Mentors see their mentees' pairs; staff see all for the yatra.
func (h *EligibilityController) List(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	q := h.DB.Model(&model.YatraEligibilityModel{})
	if yatraParam := c.Query("yatra_id"); yatraParam != "" {
		yatraID, err := uuid.Parse(yatraParam)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid yatra id")
		}
		q = q.Where("yatra_eligibility_yatra_id = ?", yatraID)
	}
	if !helper.IsStaffFromToken(c) {
		q = q.Where(
			"yatra_eligibility_profile_id = ? OR yatra_eligibility_profile_id IN (?)",
			actorID,
			h.DB.Table("mentor_requests").
				Select("mentor_request_from_profile_id").
				Where("mentor_request_to_mentor_id = ? AND mentor_request_is_approved", actorID),
		)
	}

	var rows []model.YatraEligibilityModel
	if err := q.Order("yatra_eligibility_created_at DESC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.EligibilityResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.FromEligibilityModel(row))
	}
	return helper.JsonList(c, "OK", out, nil)
}

// POST /api/u/eligibilities/:id/approve
func (h *EligibilityController) Approve(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}
	eligibilityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid eligibility id")
	}

	row, err := h.Service.Approve(eligibilityID, actorID, helper.IsStaffFromToken(c), time.Now())
	if err != nil {
		return err
	}

	helper.Notify(row.YatraEligibilityProfileID, "eligibility.approved", fiber.Map{
		"yatra_id": row.YatraEligibilityYatraID.String(),
	})
	return helper.JsonUpdated(c, "eligibility approved", dto.FromEligibilityModel(*row))
}

// POST /api/a/eligibilities/bulk-approve
// Staff approve a batch in one sweep; already approved rows are
// skipped, missing ids are reported back.
func (h *EligibilityController) BulkApprove(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BulkApproveEligibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	now := time.Now()
	approved := make([]string, 0, len(req.EligibilityIDs))
	missing := make([]string, 0)
	for _, raw := range req.EligibilityIDs {
		eligibilityID, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid eligibility id")
		}
		if _, err := h.Service.Approve(eligibilityID, actorID, true, now); err != nil {
			var ae *helper.AppError
			if errors.As(err, &ae) && ae.Code == "NOT_FOUND" {
				missing = append(missing, raw)
				continue
			}
			return err
		}
		approved = append(approved, raw)
	}

	return helper.JsonUpdated(c, "eligibilities approved", fiber.Map{
		"approved": approved,
		"missing":  missing,
	})
}

// POST /api/u/eligibilities/:id/unapprove
func (h *EligibilityController) Unapprove(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}
	eligibilityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid eligibility id")
	}

	if err := h.Service.Unapprove(eligibilityID, actorID, helper.IsStaffFromToken(c)); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "eligibility withdrawn", fiber.Map{"id": eligibilityID.String()})
}
