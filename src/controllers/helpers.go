package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/worklink-app/Backend-Work-Link/src/chat"
	"github.com/worklink-app/Backend-Work-Link/src/lib"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// ChatService is injected at boot; controllers are plain functions like the
// rest of the package, so the service lives here.
var ChatService *chat.Service

func principal(c *fiber.Ctx) models.Principal {
	return c.Locals("principal").(models.Principal)
}

// identityFromParams builds an identity from :role and :userId path
// parameters.
func identityFromParams(c *fiber.Ctx) (models.Identity, error) {
	role, err := models.ParseRole(c.Params("role"))
	if err != nil {
		return models.Identity{}, errors.New("invalid role")
	}
	id, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return models.Identity{}, errors.New("invalid user ID format")
	}
	return models.Identity{ID: id, Role: role}, nil
}

// chatError maps the chat service's sentinel errors onto the HTTP taxonomy.
// Unexpected errors are logged and returned as a generic 500.
func chatError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, chat.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	case errors.Is(err, chat.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse(err.Error()))
	case errors.Is(err, chat.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse(err.Error()))
	case errors.Is(err, chat.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(lib.MessageResponse(err.Error()))
	default:
		log.Printf("Unexpected chat error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}
}
