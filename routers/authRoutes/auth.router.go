package authRoutes

import (
	controllers "keciapp/controllers/auth"
	"keciapp/middleware"
	validators "keciapp/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration and login routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", validators.Signup(), controllers.Signup)
	authGroup.Post("/login", validators.Login(), controllers.Login)
	authGroup.Post("/device-token", middleware.JWTMiddleware, validators.DeviceToken(), controllers.UpdateDeviceToken)
}
