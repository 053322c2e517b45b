package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/worklink-app/Backend-Work-Link/src/lib"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// RateUser leaves a rating on the identity in the path. One rating per rater
// per ratee; a second attempt is a conflict.
func RateUser(c *fiber.Ctx) error {
	ratee, err := identityFromParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	var body struct {
		Score   int    `json:"score"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if body.Score < 1 || body.Score > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Score must be between 1 and 5"))
	}

	me := principal(c)
	if me.Identity.Equal(ratee) {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You can't rate yourself"))
	}

	coll := lib.DB.Collection("ratings")
	filter := bson.M{
		"rater":      me.Identity.ID,
		"raterModel": me.Identity.Role,
		"ratee":      ratee.ID,
		"rateeModel": ratee.Role,
	}
	var existing models.Rating
	err = coll.FindOne(c.Context(), filter).Decode(&existing)
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(lib.MessageResponse("You have already rated this user"))
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("Error checking existing rating: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}

	rating := models.Rating{
		Id:         primitive.NewObjectID(),
		Rater:      me.Identity.ID,
		RaterModel: me.Identity.Role,
		Ratee:      ratee.ID,
		RateeModel: ratee.Role,
		Score:      body.Score,
		Comment:    body.Comment,
		CreatedAt:  time.Now(),
	}
	if _, err := coll.InsertOne(c.Context(), rating); err != nil {
		log.Printf("Error creating rating: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create rating"))
	}

	return c.Status(fiber.StatusCreated).JSON(rating)
}

// GetUserRatings lists the ratings left on the identity in the path.
func GetUserRatings(c *fiber.Ctx) error {
	ratee, err := identityFromParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	cursor, err := lib.DB.Collection("ratings").Find(c.Context(), bson.M{
		"ratee":      ratee.ID,
		"rateeModel": ratee.Role,
	})
	if err != nil {
		log.Printf("Error finding ratings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}
	defer cursor.Close(c.Context())

	var ratings []models.Rating
	if err := cursor.All(c.Context(), &ratings); err != nil {
		log.Printf("Error decoding ratings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}
	if ratings == nil {
		ratings = []models.Rating{}
	}
	return c.JSON(ratings)
}

// ratingSummary computes the average score and count for an identity.
func ratingSummary(c *fiber.Ctx, ratee models.Identity) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"ratee": ratee.ID, "rateeModel": ratee.Role}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$score"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := lib.DB.Collection("ratings").Aggregate(c.Context(), pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(c.Context())

	var rows []struct {
		Average float64 `bson:"average"`
		Count   int64   `bson:"count"`
	}
	if err := cursor.All(c.Context(), &rows); err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Average, rows[0].Count, nil
}
