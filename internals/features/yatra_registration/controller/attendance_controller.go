package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "iysyatra_backend/internals/features/yatra_registration/dto"
	service "iysyatra_backend/internals/features/yatra_registration/service"
	helper "iysyatra_backend/internals/helpers"
)

// AttendanceController drives the desk-side handshake: inspect any
// outstanding substitution fee, then confirm collection and mark the
// pilgrim attended.
type AttendanceController struct {
	DB      *gorm.DB
	Service *service.AttendanceService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db, Service: service.NewAttendanceService(db)}
}

// GET /api/a/registrations/:id/attendance-fee
func (h *AttendanceController) InspectFee(c *fiber.Ctx) error {
	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid registration id")
	}

	pending, err := h.Service.InspectFee(registrationID)
	if err != nil {
		return err
	}
	if pending == nil {
		return helper.JsonOK(c, "no fee outstanding", fiber.Map{"fee_due": false})
	}
	return helper.JsonOK(c, "fee outstanding", fiber.Map{
		"fee_due":                 true,
		"fee_inr":                 pending.FeeINR,
		"substitution_request_id": pending.SubstitutionRequestID.String(),
	})
}

// POST /api/a/registrations/:id/attend
func (h *AttendanceController) MarkAttended(c *fiber.Ctx) error {
	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid registration id")
	}

	var req dto.MarkAttendedRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.Service.MarkAttended(registrationID, req.FeeConfirmed); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "marked attended", fiber.Map{"id": registrationID.String()})
}
