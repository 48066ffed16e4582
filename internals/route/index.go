package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentroute "iysyatra_backend/internals/features/payment/route"
	userroute "iysyatra_backend/internals/features/users/profile/route"
	yatraroute "iysyatra_backend/internals/features/yatra/route"
	registrationroute "iysyatra_backend/internals/features/yatra_registration/route"
	substitutionroute "iysyatra_backend/internals/features/yatra_substitution/route"
	authmw "iysyatra_backend/internals/middlewares/auth"
)

// SetupRoutes mounts the three surfaces:
//
//	/api/public  no auth, read-only catalog
//	/api/u       any authenticated profile
//	/api/a       staff only
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	public := api.Group("/public")
	yatraroute.YatraPublicRoutes(public, db)

	user := api.Group("/u", authmw.AuthMiddleware())
	userroute.ProfileUserRoutes(user, db)
	registrationroute.RegistrationUserRoutes(user, db)
	paymentroute.PaymentUserRoutes(user, db)
	substitutionroute.SubstitutionUserRoutes(user, db)

	admin := api.Group("/a", authmw.AuthMiddleware(), authmw.RequireStaff())
	yatraroute.YatraAdminRoutes(admin, db)
	registrationroute.RegistrationAdminRoutes(admin, db)
	paymentroute.PaymentAdminRoutes(admin, db)
}
