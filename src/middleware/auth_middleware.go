package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/worklink-app/Backend-Work-Link/src/lib"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// ProtectRoute checks for a valid JWT token, resolves the account from the
// role-appropriate collection, and attaches the principal to the request
// context.
func ProtectRoute(c *fiber.Ctx) error {
	token, err := BearerToken(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse(err.Error()))
	}

	principal, err := ResolvePrincipal(c, token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse(err.Error()))
	}

	c.Locals("principal", *principal)
	return c.Next()
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func BearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - No token provided")
	}
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:], nil
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid token format")
}

// ResolvePrincipal verifies the token and loads the matching account. It is
// shared between the HTTP middleware and the WebSocket handshake.
func ResolvePrincipal(c *fiber.Ctx, token string) (*models.Principal, error) {
	claims, err := lib.VerifyJWT(token)
	if err != nil || claims == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid token")
	}

	identity, err := lib.IdentityFromClaims(claims)
	if err != nil {
		return nil, err
	}

	collName, err := models.CollectionForRole(identity.Role)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid token")
	}

	principal := models.Principal{Identity: identity}
	var account struct {
		Name           string `bson:"name"`
		Username       string `bson:"username"`
		Email          string `bson:"email"`
		ProfilePicture string `bson:"profile_picture"`
	}
	err = lib.DB.Collection(collName).FindOne(c.Context(), bson.M{"_id": identity.ID}).Decode(&account)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found")
	}

	principal.Name = account.Name
	principal.Username = account.Username
	principal.Email = account.Email
	principal.ProfilePicture = account.ProfilePicture
	return &principal, nil
}
