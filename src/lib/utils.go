package lib

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// Returns a map with a message key for API responses
func MessageResponse(message string) fiber.Map {
	return fiber.Map{
		"message": message,
	}
}

// FindUserDto resolves an identity to its trimmed profile. The collection is
// picked off the role, so a mismatched (id, role) pair simply comes back as
// not found.
func FindUserDto(ctx context.Context, identity models.Identity) (*models.UserDto, error) {
	collName, err := models.CollectionForRole(identity.Role)
	if err != nil {
		return nil, err
	}

	var dto models.UserDto
	err = DB.Collection(collName).FindOne(
		ctx,
		bson.M{"_id": identity.ID},
		options.FindOne().SetProjection(bson.M{
			"name":            1,
			"username":        1,
			"profile_picture": 1,
			"headline":        1,
		}),
	).Decode(&dto)
	if err != nil {
		return nil, err
	}

	dto.Role = identity.Role
	return &dto, nil
}
