package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "iysyatra_backend/internals/features/users/profile/dto"
	model "iysyatra_backend/internals/features/users/profile/model"
	service "iysyatra_backend/internals/features/users/profile/service"
	helper "iysyatra_backend/internals/helpers"
)

type MentorRequestController struct {
	DB      *gorm.DB
	Service *service.MentorService
	Profile *service.ProfileService
}

func NewMentorRequestController(db *gorm.DB) *MentorRequestController {
	return &MentorRequestController{
		DB:      db,
		Service: service.NewMentorService(db),
		Profile: service.NewProfileService(db),
	}
}

/* ======================= CREATE ======================= */
// POST /api/u/mentor-requests
func (h *MentorRequestController) Create(c *fiber.Ctx) error {
	profileID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateMentorRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	mentor, err := h.Profile.GetByMemberID(req.ToMentorMemberID)
	if err != nil {
		return err
	}

	created, err := h.Service.CreateRequest(profileID, mentor.ProfileID, req.Message)
	if err != nil {
		return err
	}

	helper.Notify(mentor.ProfileID, "mentor_request_created", fiber.Map{
		"request_id": created.MentorRequestID.String(),
	})
	return helper.JsonCreated(c, "mentor request sent", dto.FromMentorRequestModel(*created))
}

/* ======================= INBOX ======================= */
// GET /api/u/mentor-requests/inbox
// Requests nominating the acting profile as mentor.
func (h *MentorRequestController) Inbox(c *fiber.Ctx) error {
	profileID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	var list []model.MentorRequestModel
	if err := h.DB.
		Where("mentor_request_to_mentor_id = ?", profileID).
		Order("mentor_request_created_at DESC").
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "OK", dto.FromMentorRequestModels(list), nil)
}

/* ======================= APPROVE / UNAPPROVE / REJECT ======================= */
// POST /api/u/mentor-requests/:id/approve
func (h *MentorRequestController) Approve(c *fiber.Ctx) error {
	return h.transition(c, "approve")
}

// POST /api/u/mentor-requests/:id/unapprove
func (h *MentorRequestController) Unapprove(c *fiber.Ctx) error {
	return h.transition(c, "unapprove")
}

// DELETE /api/u/mentor-requests/:id
func (h *MentorRequestController) Reject(c *fiber.Ctx) error {
	profileID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}
	if err := h.Service.Reject(requestID, profileID, helper.IsStaffFromToken(c)); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "mentor request rejected", fiber.Map{"id": requestID.String()})
}

func (h *MentorRequestController) transition(c *fiber.Ctx, action string) error {
	profileID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	isStaff := helper.IsStaffFromToken(c)
	now := time.Now()

	var updated *model.MentorRequestModel
	if action == "approve" {
		updated, err = h.Service.Approve(requestID, profileID, isStaff, now)
	} else {
		updated, err = h.Service.Unapprove(requestID, profileID, isStaff, now)
	}
	if err != nil {
		return err
	}

	helper.Notify(updated.MentorRequestFromProfileID, "mentor_request_"+action+"d", fiber.Map{
		"request_id": updated.MentorRequestID.String(),
	})
	return helper.JsonUpdated(c, "mentor request "+action+"d", dto.FromMentorRequestModel(*updated))
}
