package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "iysyatra_backend/internals/features/payment/dto"
	model "iysyatra_backend/internals/features/payment/model"
	service "iysyatra_backend/internals/features/payment/service"
	helper "iysyatra_backend/internals/helpers"
)

type PaymentController struct {
	DB      *gorm.DB
	Service *service.ReconcileService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db, Service: service.NewReconcileService(db)}
}

/* ======================= SUBMIT ======================= */
// POST /api/u/payments
func (h *PaymentController) Submit(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubmitPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	installmentIDs, err := req.ParseInstallmentIDs()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid installment id")
	}

	payment, err := h.Service.Submit(req.TransactionID, req.AmountINR, req.ProofURL, actorID, installmentIDs)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "payment submitted", dto.FromPaymentModel(*payment))
}

// PUT /api/u/payments/:id/proof
// Replaces the proof locator on the submitter's own payment while it
// is still under review. The blob itself lives elsewhere; only the
// opaque locator is stored.
func (h *PaymentController) AttachProof(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment id")
	}

	var req dto.AttachProofRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var payment model.PaymentModel
	if err := h.DB.Where("payment_id = ?", paymentID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if payment.PaymentSubmittedBy != actorID {
		return helper.ErrPermissionDenied("not your payment")
	}
	if payment.PaymentStatus != model.PaymentStatusUnderReview {
		return helper.ErrInvalidState("proof can only be changed while the payment is under review")
	}

	if err := h.DB.Model(&model.PaymentModel{}).
		Where("payment_id = ?", paymentID).
		Update("payment_proof_url", req.ProofURL).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "proof attached", fiber.Map{"id": paymentID.String()})
}

/* ======================= READ ======================= */
// GET /api/u/payments/mine
func (h *PaymentController) ListMine(c *fiber.Ctx) error {
	actorID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	var payments []model.PaymentModel
	if err := h.DB.
		Where("payment_submitted_by = ?", actorID).
		Order("payment_created_at DESC").
		Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.FromPaymentModel(p))
	}
	return helper.JsonList(c, "OK", out, nil)
}

// GET /api/a/payments?status=&page=&per_page=
// Verification queue for staff; defaults to under_review.
func (h *PaymentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	status := c.Query("status", model.PaymentStatusUnderReview)
	base := h.DB.Model(&model.PaymentModel{}).Where("payment_status = ?", status)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var payments []model.PaymentModel
	if err := base.
		Order("payment_created_at ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.FromPaymentModel(p))
	}
	return helper.JsonList(c, "OK", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/a/payments/:id
func (h *PaymentController) GetByID(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment id")
	}

	var payment model.PaymentModel
	if err := h.DB.Where("payment_id = ?", paymentID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromPaymentModel(payment))
}

/* ======================= PROCESS ======================= */
// POST /api/a/payments/:id/approve
func (h *PaymentController) Approve(c *fiber.Ctx) error {
	return h.process(c, func(paymentID, verifier uuid.UUID, notes *string) error {
		return h.Service.Approve(paymentID, verifier, notes, time.Now())
	}, "payment approved")
}

// POST /api/a/payments/:id/reject
func (h *PaymentController) Reject(c *fiber.Ctx) error {
	return h.process(c, func(paymentID, verifier uuid.UUID, notes *string) error {
		return h.Service.Reject(paymentID, verifier, notes, time.Now())
	}, "payment rejected")
}

// POST /api/a/payments/:id/under-review
func (h *PaymentController) MarkUnderReview(c *fiber.Ctx) error {
	return h.process(c, func(paymentID, _ uuid.UUID, _ *string) error {
		return h.Service.MarkUnderReview(paymentID)
	}, "payment sent back to review")
}

func (h *PaymentController) process(c *fiber.Ctx, apply func(paymentID, verifier uuid.UUID, notes *string) error, message string) error {
	verifier, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment id")
	}

	var req dto.ProcessPaymentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
	}

	if err := apply(paymentID, verifier, req.Notes); err != nil {
		return err
	}
	return helper.JsonUpdated(c, message, fiber.Map{"id": paymentID.String()})
}
