package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "iysyatra_backend/internals/features/yatra/dto"
	model "iysyatra_backend/internals/features/yatra/model"
	helper "iysyatra_backend/internals/helpers"
)

// YatraCatalogController manages the satellite catalogs (journeys,
// accommodations) that registrations get allocated against.
type YatraCatalogController struct {
	DB *gorm.DB
}

func NewYatraCatalogController(db *gorm.DB) *YatraCatalogController {
	return &YatraCatalogController{DB: db}
}

/* ======================= JOURNEYS ======================= */
// POST /api/a/yatras/:id/journeys
func (h *YatraCatalogController) CreateJourney(c *fiber.Ctx) error {
	yatraID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid yatra id")
	}

	var req dto.CreateJourneyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m, err := req.ToModel(yatraID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid datetime format")
	}
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create journey")
	}
	return helper.JsonCreated(c, "journey created", m)
}

// GET /api/public/yatras/:id/journeys
func (h *YatraCatalogController) ListJourneys(c *fiber.Ctx) error {
	yatraID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid yatra id")
	}

	var list []model.YatraJourneyModel
	if err := h.DB.
		Where("yatra_journey_yatra_id = ?", yatraID).
		Order("yatra_journey_start_datetime ASC").
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "OK", list, nil)
}

/* ======================= ACCOMMODATIONS ======================= */
// POST /api/a/yatras/:id/accommodations
func (h *YatraCatalogController) CreateAccommodation(c *fiber.Ctx) error {
	yatraID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid yatra id")
	}

	var req dto.CreateAccommodationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m, err := req.ToModel(yatraID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid datetime format")
	}
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create accommodation")
	}
	return helper.JsonCreated(c, "accommodation created", m)
}

// GET /api/public/yatras/:id/accommodations
func (h *YatraCatalogController) ListAccommodations(c *fiber.Ctx) error {
	yatraID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid yatra id")
	}

	var list []model.YatraAccommodationModel
	if err := h.DB.
		Where("yatra_accommodation_yatra_id = ?", yatraID).
		Order("yatra_accommodation_checkin_datetime ASC").
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "OK", list, nil)
}

/* ======================= FORM FIELDS ======================= */
// POST /api/a/yatras/:id/form-fields
func (h *YatraCatalogController) CreateFormField(c *fiber.Ctx) error {
	yatraID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid yatra id")
	}

	var req dto.CreateFormFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel(yatraID)
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create form field")
	}
	return helper.JsonCreated(c, "form field created", m)
}

// GET /api/public/yatras/:id/form-fields
func (h *YatraCatalogController) ListFormFields(c *fiber.Ctx) error {
	yatraID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid yatra id")
	}

	var list []model.YatraFormFieldModel
	if err := h.DB.
		Where("yatra_form_field_yatra_id = ?", yatraID).
		Order("yatra_form_field_order ASC").
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "OK", list, nil)
}

/* ======================= CUSTOM FIELDS ======================= */
// POST /api/a/yatras/:id/custom-fields
// Creates the field and its selectable values together.
func (h *YatraCatalogController) CreateCustomField(c *fiber.Ctx) error {
	yatraID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid yatra id")
	}

	var req dto.CreateCustomFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	field := model.YatraCustomFieldModel{
		YatraCustomFieldYatraID:    yatraID,
		YatraCustomFieldName:       req.Name,
		YatraCustomFieldType:       req.Type,
		YatraCustomFieldIsMultiple: req.IsMultiple,
		YatraCustomFieldOrder:      req.Order,
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, tx.Error.Error())
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Create(&field).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create custom field")
	}
	if len(req.Values) > 0 {
		values := make([]model.YatraCustomFieldValueModel, 0, len(req.Values))
		for _, v := range req.Values {
			values = append(values, model.YatraCustomFieldValueModel{
				YatraCustomFieldValueFieldID: field.YatraCustomFieldID,
				YatraCustomFieldValueValue:   v,
			})
		}
		if err := tx.Create(&values).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "failed to create custom field values")
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "custom field created", field)
}

// GET /api/public/yatras/:id/custom-fields
func (h *YatraCatalogController) ListCustomFields(c *fiber.Ctx) error {
	yatraID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid yatra id")
	}

	var fields []model.YatraCustomFieldModel
	if err := h.DB.
		Where("yatra_custom_field_yatra_id = ?", yatraID).
		Order("yatra_custom_field_order ASC").
		Find(&fields).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "OK", fields, nil)
}
