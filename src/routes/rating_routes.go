package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/worklink-app/Backend-Work-Link/src/controllers"
	"github.com/worklink-app/Backend-Work-Link/src/middleware"
)

// RatingRoutes sets up rating routes.
func RatingRoutes(app *fiber.App) {
	rating := app.Group("/api/v1/ratings", middleware.ProtectRoute)

	rating.Post("/:role/:userId", controllers.RateUser)
	rating.Get("/:role/:userId", controllers.GetUserRatings)
}
