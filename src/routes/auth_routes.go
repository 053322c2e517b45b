package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/worklink-app/Backend-Work-Link/src/controllers"
)

// AuthRoutes sets up signup and login for both account classes.
func AuthRoutes(app *fiber.App) {
	auth := app.Group("/api/v1/auth")

	auth.Post("/signup", controllers.Signup)
	auth.Post("/login", controllers.Login)
}
