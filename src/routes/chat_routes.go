package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/worklink-app/Backend-Work-Link/src/controllers"
	"github.com/worklink-app/Backend-Work-Link/src/middleware"
)

// ChatRoutes sets up messaging routes: sending, marking seen, history,
// conversation list, unread markers and typing indicators.
func ChatRoutes(app *fiber.App) {
	chat := app.Group("/api/v1/chat", middleware.ProtectRoute)

	chat.Post("/send/:role/:userId", controllers.SendMessage)
	chat.Put("/seen/:messageId", controllers.MarkMessageSeen)
	chat.Get("/history/:role/:userId", controllers.GetChatHistory)
	chat.Get("/conversations", controllers.GetConversations)
	chat.Get("/unread", controllers.GetUnreadMessages)
	chat.Post("/typing/:role/:userId", controllers.Typing)
}
