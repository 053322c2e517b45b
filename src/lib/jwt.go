package lib

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// GenerateJWT issues a signed token for the given identity. The role claim
// travels with the id so the middleware knows which collection to resolve
// the account from.
func GenerateJWT(identity models.Identity) (string, error) {
	claims := jwt.MapClaims{
		"userId": identity.ID.Hex(),
		"role":   string(identity.Role),
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret()))
}

// VerifyJWT validates signature and expiry and returns the token's claims.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(jwtSecret()), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
}

// IdentityFromClaims extracts and validates the (id, role) pair carried by a
// verified token.
func IdentityFromClaims(claims jwt.MapClaims) (models.Identity, error) {
	userID, ok := claims["userId"].(string)
	if !ok {
		return models.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return models.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	role, err := models.ParseRole(roleStr)
	if err != nil {
		return models.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	identity := models.Identity{ID: id, Role: role}
	if err := identity.Validate(); err != nil {
		return models.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}
	return identity, nil
}

func jwtSecret() string {
	return Env("JWT_SECRET", "fallback-secret-key")
}
