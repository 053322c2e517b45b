package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/worklink-app/Backend-Work-Link/src/lib"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// GetUserNotifications returns the authenticated user's notifications,
// newest first, with the related user populated.
func GetUserNotifications(c *fiber.Ctx) error {
	me := principal(c)

	collection := lib.DB.Collection("notifications")
	filter := bson.M{
		"recipient":      me.Identity.ID,
		"recipientModel": me.Identity.Role,
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(100)

	cursor, err := collection.Find(c.Context(), filter, opts)
	if err != nil {
		log.Printf("Error finding notifications: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}
	defer cursor.Close(c.Context())

	var notifications []models.Notification
	if err := cursor.All(c.Context(), &notifications); err != nil {
		log.Printf("Error decoding notifications: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}

	type notificationResponse struct {
		models.Notification
		RelatedUserProfile *models.UserDto `json:"relatedUserProfile,omitempty"`
	}

	response := make([]notificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		item := notificationResponse{Notification: notification}
		if !notification.RelatedUser.IsZero() {
			related := models.Identity{ID: notification.RelatedUser, Role: notification.RelatedUserModel}
			if dto, err := lib.FindUserDto(c.Context(), related); err == nil {
				item.RelatedUserProfile = dto
			}
		}
		response = append(response, item)
	}

	return c.JSON(response)
}

// MarkNotificationRead marks one of the authenticated user's notifications
// as read.
func MarkNotificationRead(c *fiber.Ctx) error {
	notificationID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID format"))
	}

	me := principal(c)
	res, err := lib.DB.Collection("notifications").UpdateOne(
		c.Context(),
		bson.M{
			"_id":            notificationID,
			"recipient":      me.Identity.ID,
			"recipientModel": me.Identity.Role,
		},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		log.Printf("Error marking notification read: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}
	if res.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Notification not found"))
	}

	return c.JSON(lib.MessageResponse("Notification marked as read"))
}

// MarkAllNotificationsRead marks every unread notification of the
// authenticated user as read.
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	me := principal(c)
	_, err := lib.DB.Collection("notifications").UpdateMany(
		c.Context(),
		bson.M{
			"recipient":      me.Identity.ID,
			"recipientModel": me.Identity.Role,
			"read":           false,
		},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		log.Printf("Error marking notifications read: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}

	return c.JSON(lib.MessageResponse("All notifications marked as read"))
}
