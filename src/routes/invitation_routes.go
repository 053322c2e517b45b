package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/worklink-app/Backend-Work-Link/src/controllers"
	"github.com/worklink-app/Backend-Work-Link/src/middleware"
)

// InvitationRoutes sets up invitation and connection routes: sending,
// accepting, rejecting, listing pending requests and listing connections.
func InvitationRoutes(app *fiber.App) {
	invitation := app.Group("/api/v1/invitations", middleware.ProtectRoute)

	invitation.Post("/request/:role/:userId", controllers.SendInvitation)
	invitation.Put("/accept/:invitationId", controllers.AcceptInvitation)
	invitation.Put("/reject/:invitationId", controllers.RejectInvitation)
	invitation.Get("/pending", controllers.GetPendingInvitations)
	invitation.Get("/connections", controllers.GetConnections)
}
