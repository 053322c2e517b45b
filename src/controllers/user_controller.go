package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/worklink-app/Backend-Work-Link/src/lib"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// GetMe returns the authenticated user's own account document.
func GetMe(c *fiber.Ctx) error {
	me := principal(c)
	collName, err := models.CollectionForRole(me.Identity.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}

	var account bson.M
	err = lib.DB.Collection(collName).FindOne(
		c.Context(),
		bson.M{"_id": me.Identity.ID},
		options.FindOne().SetProjection(bson.M{"password": 0}),
	).Decode(&account)
	if err != nil {
		log.Printf("Error loading own account: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}

	account["role"] = me.Identity.Role
	return c.JSON(account)
}

// GetUserProfile returns a public profile for the identity in the path,
// including the average rating.
func GetUserProfile(c *fiber.Ctx) error {
	identity, err := identityFromParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	collName, _ := models.CollectionForRole(identity.Role)
	var account bson.M
	err = lib.DB.Collection(collName).FindOne(
		c.Context(),
		bson.M{"_id": identity.ID},
		options.FindOne().SetProjection(bson.M{"password": 0, "email": 0}),
	).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		log.Printf("Error finding user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}

	average, count, err := ratingSummary(c, identity)
	if err != nil {
		log.Printf("Error computing rating summary: %v", err)
	}

	account["role"] = identity.Role
	account["rating"] = fiber.Map{
		"average": average,
		"count":   count,
	}
	return c.JSON(account)
}

// UpdateProfile updates the authenticated user's editable profile fields.
func UpdateProfile(c *fiber.Ctx) error {
	me := principal(c)

	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	allowed := map[string]bool{
		"name": true, "headline": true, "about": true, "location": true,
		"profile_picture": true, "cover_picture": true, "skills": true,
		"experience": true, "education": true, "company": true, "website": true,
	}
	set := bson.M{}
	for field, value := range updates {
		if allowed[field] {
			set[field] = value
		}
	}
	if len(set) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("No updatable fields provided"))
	}

	collName, _ := models.CollectionForRole(me.Identity.Role)
	_, err := lib.DB.Collection(collName).UpdateOne(
		c.Context(),
		bson.M{"_id": me.Identity.ID},
		bson.M{"$set": set},
	)
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to update profile"))
	}

	return c.JSON(lib.MessageResponse("Profile updated successfully"))
}

// SearchUsers searches both collections by name or username prefix.
func SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Query parameter q is required"))
	}

	filter := bson.M{"$or": []bson.M{
		{"name": bson.M{"$regex": query, "$options": "i"}},
		{"username": bson.M{"$regex": query, "$options": "i"}},
	}}
	projection := options.Find().
		SetProjection(bson.M{"name": 1, "username": 1, "profile_picture": 1, "headline": 1}).
		SetLimit(20)

	var results []models.UserDto
	for _, role := range []models.Role{models.RoleSeeker, models.RoleRecruiter} {
		collName, _ := models.CollectionForRole(role)
		cursor, err := lib.DB.Collection(collName).Find(c.Context(), filter, projection)
		if err != nil {
			log.Printf("Error searching %s: %v", collName, err)
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
		}

		var users []models.UserDto
		if err := cursor.All(c.Context(), &users); err != nil {
			log.Printf("Error decoding %s search: %v", collName, err)
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
		}
		for i := range users {
			users[i].Role = role
		}
		results = append(results, users...)
	}

	if results == nil {
		results = []models.UserDto{}
	}
	return c.JSON(results)
}
