package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/worklink-app/Backend-Work-Link/src/controllers"
	"github.com/worklink-app/Backend-Work-Link/src/middleware"
)

// UserRoutes sets up profile and search routes.
func UserRoutes(app *fiber.App) {
	user := app.Group("/api/v1/users", middleware.ProtectRoute)

	user.Get("/me", controllers.GetMe)
	user.Put("/me", controllers.UpdateProfile)
	user.Get("/search", controllers.SearchUsers)
	user.Get("/:role/:userId", controllers.GetUserProfile)
}
