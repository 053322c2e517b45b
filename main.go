package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/worklink-app/Backend-Work-Link/src/chat"
	"github.com/worklink-app/Backend-Work-Link/src/controllers"
	"github.com/worklink-app/Backend-Work-Link/src/lib"
	"github.com/worklink-app/Backend-Work-Link/src/routes"
	"github.com/worklink-app/Backend-Work-Link/src/storage/mongostore"
	"github.com/worklink-app/Backend-Work-Link/src/ws"
)

func main() {
	lib.LoadEnv()

	client := lib.ConnectDB()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := mongostore.EnsureIndexes(indexCtx, lib.DB); err != nil {
		log.Printf("Warning: failed to create indexes: %v", err)
	}
	cancel()

	// Presence is in-memory unless a shared Valkey instance is configured.
	var presence ws.PresenceStore = ws.NewMemoryPresence()
	if addr := lib.Env("VALKEY_ADDR", ""); addr != "" {
		valkeyPresence, err := ws.NewValkeyPresence(addr)
		if err != nil {
			log.Fatalf("Failed to connect to Valkey: %v", err)
		}
		defer valkeyPresence.Close()
		presence = valkeyPresence
		log.Println("Connected to Valkey for shared presence")
	}

	hub := ws.NewHub(presence)
	chatService := chat.NewService(
		mongostore.NewInvitationStore(lib.DB),
		mongostore.NewMessageStore(lib.DB),
		mongostore.NewUnreadStore(lib.DB),
		hub,
	)
	controllers.ChatService = chatService

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: lib.Env("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Register routes
	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.InvitationRoutes(app)
	routes.ChatRoutes(app)
	routes.PostRoutes(app)
	routes.JobRoutes(app)
	routes.RatingRoutes(app)
	routes.NotificationRoutes(app)

	// Real-time channel
	app.Use("/ws", ws.UpgradeGate)
	app.Get("/ws", ws.Handler(hub, chatService))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	port := lib.Env("PORT", "3000")
	log.Printf("Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
