package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "iysyatra_backend/internals/features/payment/controller"
	"iysyatra_backend/internals/middlewares"
)

// PaymentUserRoutes: proof submission and own history. Submission is
// rate-limited harder than the rest of the API.
func PaymentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db)

	payments := r.Group("/payments")
	payments.Post("/", middlewares.StrictRateLimiter(), ctrl.Submit)
	payments.Put("/:id/proof", ctrl.AttachProof)
	payments.Get("/mine", ctrl.ListMine)
}

// PaymentAdminRoutes: the verification queue.
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db)

	payments := r.Group("/payments")
	payments.Get("/", ctrl.List)
	payments.Get("/:id", ctrl.GetByID)
	payments.Post("/:id/approve", ctrl.Approve)
	payments.Post("/:id/reject", ctrl.Reject)
	payments.Post("/:id/under-review", ctrl.MarkUnderReview)
}
