package authRoutes

import (
	authController "github.com/wahid1099/CourseMaster-Backend/controllers/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup and login routes
func SetupAuthRoutes(app *fiber.App, ctrl *authController.Controller) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", ctrl.Signup)
	authGroup.Post("/login", ctrl.Login)
}
