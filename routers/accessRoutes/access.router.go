package accessRoutes

import (
	controllers "keciapp/controllers/access"
	"keciapp/middleware"
	validators "keciapp/validators/access"

	"github.com/gofiber/fiber/v2"
)

// SetupAccessRoutes sets up grant management and bulk reconciliation routes
func SetupAccessRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/access", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	// Single-grant operations
	adminGroup.Post("/grant", validators.GrantAccess(), controllers.GrantAccess)
	adminGroup.Put("/grant/:id", validators.UpdateAccess(), controllers.UpdateAccess)
	adminGroup.Delete("/grant", validators.RevokeAccess(), controllers.RevokeAccess)
	adminGroup.Get("/user/:user_id", validators.UserIDParam(), controllers.GetUserGrants)
	adminGroup.Get("/target", validators.TargetQuery(), controllers.GetTargetGrants)

	// Bulk operations
	adminGroup.Post("/seed", controllers.BulkSeedGrants)
	adminGroup.Post("/reconcile", controllers.ReconcileSequences)

	// User-facing view of their own grants
	app.Get("/access/mine", middleware.JWTMiddleware, controllers.GetMyGrants)
}
