package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "iysyatra_backend/internals/features/yatra_substitution/controller"
	"iysyatra_backend/internals/middlewares"
)

// SubstitutionUserRoutes: the code-verified handoff flow. Create and
// respond share the strict limiter to slow down code guessing.
func SubstitutionUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSubstitutionController(db)

	subs := r.Group("/substitutions")
	subs.Post("/", middlewares.StrictRateLimiter(), ctrl.Create)
	subs.Post("/:id/respond", middlewares.StrictRateLimiter(), ctrl.Respond)
	subs.Get("/inbox", ctrl.Inbox)
	subs.Get("/mine", ctrl.ListMine)
}
