package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "iysyatra_backend/internals/features/yatra/controller"
)

// YatraPublicRoutes: read-only catalog browsing.
func YatraPublicRoutes(r fiber.Router, db *gorm.DB) {
	yatraCtrl := controller.NewYatraController(db)
	catalogCtrl := controller.NewYatraCatalogController(db)

	yatras := r.Group("/yatras")
	yatras.Get("/", yatraCtrl.List)
	yatras.Get("/:id", yatraCtrl.GetByID)
	yatras.Get("/:id/journeys", catalogCtrl.ListJourneys)
	yatras.Get("/:id/accommodations", catalogCtrl.ListAccommodations)
	yatras.Get("/:id/form-fields", catalogCtrl.ListFormFields)
	yatras.Get("/:id/custom-fields", catalogCtrl.ListCustomFields)
}

// YatraAdminRoutes: catalog management (staff only).
func YatraAdminRoutes(r fiber.Router, db *gorm.DB) {
	yatraCtrl := controller.NewYatraController(db)
	catalogCtrl := controller.NewYatraCatalogController(db)

	yatras := r.Group("/yatras")
	yatras.Post("/", yatraCtrl.Create)
	yatras.Put("/:id/flags", yatraCtrl.UpdateFlags)
	yatras.Post("/:id/journeys", catalogCtrl.CreateJourney)
	yatras.Post("/:id/accommodations", catalogCtrl.CreateAccommodation)
	yatras.Post("/:id/form-fields", catalogCtrl.CreateFormField)
	yatras.Post("/:id/custom-fields", catalogCtrl.CreateCustomField)
}
