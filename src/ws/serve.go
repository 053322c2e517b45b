package ws

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/worklink-app/Backend-Work-Link/src/chat"
	"github.com/worklink-app/Backend-Work-Link/src/lib"
	"github.com/worklink-app/Backend-Work-Link/src/middleware"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// requestContext bounds the database work triggered by a single socket
// event, so a stalled persistence call cannot hang the read pump forever.
func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// UpgradeGate authenticates the handshake before the connection is upgraded.
// The token travels as a query parameter (browsers cannot set headers on
// WebSocket dials) with an Authorization-header fallback. Failure is terminal
// for the attempt: no registry entry is ever created.
func UpgradeGate(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	token := c.Query("token")
	if token == "" {
		var err error
		token, err = middleware.BearerToken(c.Get("Authorization"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - No token provided"))
		}
	}

	principal, err := middleware.ResolvePrincipal(c, token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - Invalid token"))
	}

	c.Locals("principal", *principal)
	return c.Next()
}

// Handler returns the fiber handler that upgrades the connection, registers
// the client with the hub and runs the pumps until disconnect.
func Handler(hub *Hub, svc *chat.Service) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		principal, ok := conn.Locals("principal").(models.Principal)
		if !ok {
			_ = conn.Close()
			return
		}

		client := &Client{
			id:        uuid.NewString(),
			hub:       hub,
			conn:      conn,
			send:      make(chan []byte, 256),
			principal: principal,
			svc:       svc,
		}

		hub.Register(client)
		go client.writePump()
		client.readPump()
	})
}
