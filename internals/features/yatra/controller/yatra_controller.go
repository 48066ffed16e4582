package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "iysyatra_backend/internals/features/yatra/dto"
	model "iysyatra_backend/internals/features/yatra/model"
	helper "iysyatra_backend/internals/helpers"
)

type YatraController struct {
	DB *gorm.DB
}

func NewYatraController(db *gorm.DB) *YatraController {
	return &YatraController{DB: db}
}

/* ======================= CREATE ======================= */
// POST /api/a/yatras
// Creates the yatra with its installment schedule in one transaction;
// the schedule is the single source of truth for what is owed.
func (h *YatraController) Create(c *fiber.Ctx) error {
	var req dto.CreateYatraRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m, err := req.ToModel()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date format")
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

	if err := tx.Create(m).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create yatra")
	}

	installments := make([]model.YatraInstallmentModel, 0, len(req.Installments))
	for _, inst := range req.Installments {
		installments = append(installments, model.YatraInstallmentModel{
			YatraInstallmentYatraID:   m.YatraID,
			YatraInstallmentLabel:     inst.Label,
			YatraInstallmentAmountINR: inst.AmountINR,
			YatraInstallmentOrder:     inst.Order,
		})
	}
	if err := tx.Create(&installments).Error; err != nil {
		tx.Rollback()
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "duplicate installment label for this yatra")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create installments")
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "yatra created", dto.FromYatraModel(*m, installments))
}

/* ======================== GET BY ID ======================== */
// GET /api/public/yatras/:id
func (h *YatraController) GetByID(c *fiber.Ctx) error {
	yatraID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid yatra id")
	}

	var row model.YatraModel
	if err := h.DB.Where("yatra_id = ?", yatraID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "yatra not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	installments, err := LoadInstallments(h.DB, yatraID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", dto.FromYatraModel(row, installments))
}

/* ======================== LIST ======================== */
// GET /api/public/yatras?page=&per_page=
func (h *YatraController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.YatraModel{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.YatraModel
	if err := base.
		Order("yatra_start_date DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.YatraResponse, 0, len(list))
	for _, m := range list {
		installments, err := LoadInstallments(h.DB, m.YatraID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		out = append(out, dto.FromYatraModel(m, installments))
	}

	return helper.JsonList(c, "OK", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* ======================== UPDATE FLAGS ======================== */
// PUT /api/a/yatras/:id/flags
// Opens/closes the registration, RCS download and substitution windows.
func (h *YatraController) UpdateFlags(c *fiber.Ctx) error {
	yatraID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid yatra id")
	}

	var req dto.UpdateYatraFlagsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	patch := req.Patch()
	if len(patch) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no flags provided")
	}

	res := h.DB.Model(&model.YatraModel{}).
		Where("yatra_id = ?", yatraID).
		Updates(patch)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "yatra not found")
	}

	return helper.JsonUpdated(c, "yatra flags updated", fiber.Map{"id": yatraID.String()})
}

// LoadInstallments returns a yatra's schedule in display order.
func LoadInstallments(db *gorm.DB, yatraID uuid.UUID) ([]model.YatraInstallmentModel, error) {
	var installments []model.YatraInstallmentModel
	err := db.
		Where("yatra_installment_yatra_id = ?", yatraID).
		Order("yatra_installment_order ASC, yatra_installment_id ASC").
		Find(&installments).Error
	return installments, err
}
