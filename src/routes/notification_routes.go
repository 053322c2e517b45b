package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/worklink-app/Backend-Work-Link/src/controllers"
	"github.com/worklink-app/Backend-Work-Link/src/middleware"
)

// NotificationRoutes sets up notification listing and read-marking routes.
func NotificationRoutes(app *fiber.App) {
	notification := app.Group("/api/v1/notifications", middleware.ProtectRoute)

	notification.Get("/", controllers.GetUserNotifications)
	notification.Put("/:id/read", controllers.MarkNotificationRead)
	notification.Put("/read-all", controllers.MarkAllNotificationsRead)
}
