package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "iysyatra_backend/internals/features/yatra_registration/controller"
)

// RegistrationUserRoutes: registrant-facing flows.
func RegistrationUserRoutes(r fiber.Router, db *gorm.DB) {
	regCtrl := controller.NewRegistrationController(db)
	eligCtrl := controller.NewEligibilityController(db)

	regs := r.Group("/registrations")
	regs.Post("/", regCtrl.Create)
	regs.Get("/mine", regCtrl.ListMine)
	regs.Get("/:id", regCtrl.GetByID)
	regs.Put("/:id", regCtrl.Update)
	regs.Delete("/:id", regCtrl.Cancel)
	regs.Post("/:id/rcs-download", regCtrl.RecordRcsDownload)
	regs.Post("/:id/custom-field-values", regCtrl.SelectCustomFieldValues)

	eligs := r.Group("/eligibilities")
	eligs.Post("/", eligCtrl.RequestApproval)
	eligs.Get("/", eligCtrl.List)
	eligs.Post("/:id/approve", eligCtrl.Approve)
	eligs.Post("/:id/unapprove", eligCtrl.Unapprove)
}

// RegistrationAdminRoutes: staff-side listing, allocation and the
// attendance handshake.
func RegistrationAdminRoutes(r fiber.Router, db *gorm.DB) {
	regCtrl := controller.NewRegistrationController(db)
	eligCtrl := controller.NewEligibilityController(db)
	attCtrl := controller.NewAttendanceController(db)

	r.Get("/yatras/:id/registrations", regCtrl.ListByYatra)
	r.Post("/eligibilities/bulk-approve", eligCtrl.BulkApprove)

	regs := r.Group("/registrations")
	regs.Post("/:id/accommodation", regCtrl.AssignAccommodation)
	regs.Post("/:id/journey", regCtrl.AssignJourney)
	regs.Get("/:id/attendance-fee", attCtrl.InspectFee)
	regs.Post("/:id/attend", attCtrl.MarkAttended)
}
