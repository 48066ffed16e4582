package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "iysyatra_backend/internals/features/yatra_substitution/dto"
	model "iysyatra_backend/internals/features/yatra_substitution/model"
	service "iysyatra_backend/internals/features/yatra_substitution/service"
	helper "iysyatra_backend/internals/helpers"
)

type SubstitutionController struct {
	DB      *gorm.DB
	Service *service.SubstitutionService
}

func NewSubstitutionController(db *gorm.DB) *SubstitutionController {
	return &SubstitutionController{DB: db, Service: service.NewSubstitutionService(db)}
}

/* ======================= CREATE ======================= */
// POST /api/u/substitutions
// The plaintext code is returned exactly once, to the initiator.
func (h *SubstitutionController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateSubstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	registrationID, err := uuid.Parse(req.RegistrationID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid registration id")
	}

	row, code, err := h.Service.Create(registrationID, actorID, req.TargetMemberID, time.Now())
	if err != nil {
		return err
	}

	helper.Notify(row.YatraSubstitutionRequestTargetProfileID, "substitution.requested", fiber.Map{
		"request_id": row.YatraSubstitutionRequestID.String(),
		"expires_at": row.YatraSubstitutionRequestExpiresAt,
	})

	resp := dto.FromSubstitutionModel(*row)
	resp.Code = code
	return helper.JsonCreated(c, "substitution request created", resp)
}

/* ======================= RESPOND ======================= */
// POST /api/u/substitutions/:id/respond
func (h *SubstitutionController) Respond(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	var req dto.RespondSubstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	row, err := h.Service.Respond(requestID, actorID, req.Action, req.Code, time.Now())
	if err != nil {
		return err
	}
	if row == nil {
		return helper.JsonDeleted(c, "substitution request rejected", fiber.Map{"id": requestID.String()})
	}

	helper.Notify(row.YatraSubstitutionRequestInitiatorID, "substitution.accepted", fiber.Map{
		"request_id": row.YatraSubstitutionRequestID.String(),
	})
	return helper.JsonUpdated(c, "substitution accepted", dto.FromSubstitutionModel(*row))
}

/* ======================= READ ======================= */
// GET /api/u/substitutions/inbox
// Pending requests where the caller is the target.
func (h *SubstitutionController) Inbox(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []model.SubstitutionRequestModel
	if err := h.DB.
		Where("yatra_substitution_request_target_profile_id = ?", actorID).
		Where("yatra_substitution_request_status = ?", model.SubStatusPending).
		Where("yatra_substitution_request_expires_at > ?", time.Now()).
		Order("yatra_substitution_request_created_at DESC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.SubstitutionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.FromSubstitutionModel(row))
	}
	return helper.JsonList(c, "OK", out, nil)
}

// GET /api/u/substitutions/mine
// Requests the caller initiated.
func (h *SubstitutionController) ListMine(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []model.SubstitutionRequestModel
	if err := h.DB.
		Where("yatra_substitution_request_initiator_id = ?", actorID).
		Order("yatra_substitution_request_created_at DESC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.SubstitutionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.FromSubstitutionModel(row))
	}
	return helper.JsonList(c, "OK", out, nil)
}
