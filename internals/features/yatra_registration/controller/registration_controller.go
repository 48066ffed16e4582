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

type RegistrationController struct {
	DB      *gorm.DB
	Service *service.RegistrationService
}

func NewRegistrationController(db *gorm.DB) *RegistrationController {
	return &RegistrationController{DB: db, Service: service.NewRegistrationService(db)}
}

/* ======================= CREATE ======================= */
// POST /api/u/registrations
func (h *RegistrationController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	yatraID, registeredFor, err := req.ResolveIDs(actorID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	reg, err := h.Service.Create(yatraID, actorID, registeredFor, helper.IsStaffFromToken(c), req.FormData)
	if err != nil {
		return err
	}

	helper.Notify(registeredFor, "registration.created", fiber.Map{
		"registration_id": reg.YatraRegistrationID.String(),
		"yatra_id":        yatraID.String(),
	})

	return helper.JsonCreated(c, "registration created", dto.FromRegistrationModel(*reg, nil))
}

/* ======================= READ ======================= */
// GET /api/u/registrations/mine
// Registrations the caller travels on or filed for someone else.
func (h *RegistrationController) ListMine(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	var regs []model.YatraRegistrationModel
	if err := h.DB.
		Where("yatra_registration_registered_for = ? OR yatra_registration_registered_by = ?", actorID, actorID).
		Order("yatra_registration_created_at DESC").
		Find(&regs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.RegistrationResponse, 0, len(regs))
	for _, reg := range regs {
		out = append(out, dto.FromRegistrationModel(reg, nil))
	}
	return helper.JsonList(c, "OK", out, nil)
}

// GET /api/u/registrations/:id
func (h *RegistrationController) GetByID(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}
	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid registration id")
	}

	var reg model.YatraRegistrationModel
	if err := h.DB.Where("yatra_registration_id = ?", registrationID).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("registration not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if !helper.IsStaffFromToken(c) &&
		reg.YatraRegistrationRegisteredBy != actorID &&
		reg.YatraRegistrationRegisteredFor != actorID {
		return helper.ErrPermissionDenied("not your registration")
	}

	var installments []model.YatraRegistrationInstallmentModel
	if err := h.DB.
		Where("yatra_registration_installment_registration_id = ?", registrationID).
		Find(&installments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", dto.FromRegistrationModel(reg, installments))
}

// GET /api/a/yatras/:id/registrations?page=&per_page=
func (h *RegistrationController) ListByYatra(c *fiber.Ctx) error {
	yatraID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid yatra id")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.YatraRegistrationModel{}).
		Where("yatra_registration_yatra_id = ?", yatraID)
	if status := c.Query("status"); status != "" {
		base = base.Where("yatra_registration_status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var regs []model.YatraRegistrationModel
	if err := base.
		Order("yatra_registration_created_at ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&regs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.RegistrationResponse, 0, len(regs))
	for _, reg := range regs {
		out = append(out, dto.FromRegistrationModel(reg, nil))
	}
	return helper.JsonList(c, "OK", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* ======================= UPDATE ======================= */
// PUT /api/u/registrations/:id
// Replaces form_data. Terminal registrations are frozen.
func (h *RegistrationController) Update(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}
	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid registration id")
	}

	var reg model.YatraRegistrationModel
	if err := h.DB.Where("yatra_registration_id = ?", registrationID).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("registration not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !helper.IsStaffFromToken(c) &&
		reg.YatraRegistrationRegisteredBy != actorID &&
		reg.YatraRegistrationRegisteredFor != actorID {
		return helper.ErrPermissionDenied("not your registration")
	}
	if model.IsTerminal(reg.YatraRegistrationStatus) {
		return helper.ErrInvalidState("registration is closed and can no longer be edited")
	}

	var req dto.UpdateRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.DB.Model(&model.YatraRegistrationModel{}).
		Where("yatra_registration_id = ?", registrationID).
		Update("yatra_registration_form_data", req.FormData).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "registration updated", fiber.Map{"id": registrationID.String()})
}

/* ======================= CANCEL ======================= */
// DELETE /api/u/registrations/:id
func (h *RegistrationController) Cancel(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}
	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid registration id")
	}

	if err := h.Service.Cancel(registrationID, actorID, helper.IsStaffFromToken(c), time.Now()); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "registration cancelled", fiber.Map{"id": registrationID.String()})
}

/* ======================= RCS DOWNLOAD ======================= */
// POST /api/u/registrations/:id/rcs-download
// Records a Registration Confirmation Slip download event.
func (h *RegistrationController) RecordRcsDownload(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}
	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid registration id")
	}

	reg, err := h.Service.RecordRcsDownload(registrationID, actorID, helper.IsStaffFromToken(c), time.Now())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "download recorded", fiber.Map{
		"registration_id": reg.YatraRegistrationID.String(),
		"download_count":  reg.YatraRegistrationRcsDownloadCount,
	})
}

/* ======================= ALLOCATIONS ======================= */
// POST /api/a/registrations/:id/accommodation
func (h *RegistrationController) AssignAccommodation(c *fiber.Ctx) error {
	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid registration id")
	}

	var req dto.AssignAccommodationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	accommodationID, err := uuid.Parse(req.AccommodationID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid accommodation id")
	}

	row := model.RegistrationAccommodationModel{
		RegistrationAccommodationRegistrationID:  registrationID,
		RegistrationAccommodationAccommodationID: accommodationID,
		RegistrationAccommodationRoomNumber:      req.RoomNumber,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "accommodation already assigned to this registration")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "accommodation assigned", row)
}

// POST /api/a/registrations/:id/journey
func (h *RegistrationController) AssignJourney(c *fiber.Ctx) error {
	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid registration id")
	}

	var req dto.AssignJourneyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	journeyID, err := uuid.Parse(req.JourneyID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid journey id")
	}

	row := model.RegistrationJourneyModel{
		RegistrationJourneyRegistrationID: registrationID,
		RegistrationJourneyJourneyID:      journeyID,
		RegistrationJourneySeatNumber:     req.SeatNumber,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "journey already assigned to this registration")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "journey assigned", row)
}

// POST /api/u/registrations/:id/custom-field-values
// Registrant picks from the yatra's admin-defined options.
func (h *RegistrationController) SelectCustomFieldValues(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}
	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid registration id")
	}

	var reg model.YatraRegistrationModel
	if err := h.DB.Where("yatra_registration_id = ?", registrationID).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("registration not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !helper.IsStaffFromToken(c) &&
		reg.YatraRegistrationRegisteredBy != actorID &&
		reg.YatraRegistrationRegisteredFor != actorID {
		return helper.ErrPermissionDenied("not your registration")
	}

	var req dto.SelectCustomFieldValuesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rows := make([]model.RegistrationCustomFieldValueModel, 0, len(req.ValueIDs))
	for _, raw := range req.ValueIDs {
		valueID, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid value id")
		}
		rows = append(rows, model.RegistrationCustomFieldValueModel{
			RegistrationCustomFieldValueRegistrationID: registrationID,
			RegistrationCustomFieldValueValueID:        valueID,
		})
	}
	if err := h.DB.Create(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "custom field values saved", rows)
}
