package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "iysyatra_backend/internals/features/users/profile/controller"
)

// ProfileUserRoutes mounts the authenticated profile + mentor graph routes.
func ProfileUserRoutes(r fiber.Router, db *gorm.DB) {
	profileCtrl := controller.NewProfileController(db)
	mentorCtrl := controller.NewMentorRequestController(db)

	profiles := r.Group("/profiles")
	profiles.Get("/me", profileCtrl.GetMe)
	profiles.Put("/me", profileCtrl.UpdateMe)
	profiles.Get("/mentees", profileCtrl.ListMentees)
	profiles.Get("/by-member-id/:member_id", profileCtrl.GetByMemberID)

	requests := r.Group("/mentor-requests")
	requests.Post("/", mentorCtrl.Create)
	requests.Get("/inbox", mentorCtrl.Inbox)
	requests.Post("/:id/approve", mentorCtrl.Approve)
	requests.Post("/:id/unapprove", mentorCtrl.Unapprove)
	requests.Delete("/:id", mentorCtrl.Reject)
}
