package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/worklink-app/Backend-Work-Link/src/lib"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// SendInvitation creates a pending invitation from the authenticated user to
// the identity in the path.
func SendInvitation(c *fiber.Ctx) error {
	receiver, err := identityFromParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	me := principal(c)
	inv, err := ChatService.RequestInvitation(c.Context(), me.Identity, receiver)
	if err != nil {
		return chatError(c, err)
	}

	createNotification(c, models.Notification{
		Recipient:        receiver.ID,
		RecipientModel:   receiver.Role,
		Type:             models.NotificationInvitationReceived,
		RelatedUser:      me.Identity.ID,
		RelatedUserModel: me.Identity.Role,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Invitation sent successfully",
		"invitation": inv,
	})
}

// AcceptInvitation accepts a pending invitation addressed to the
// authenticated user.
func AcceptInvitation(c *fiber.Ctx) error {
	return respondInvitation(c, true)
}

// RejectInvitation rejects a pending invitation addressed to the
// authenticated user.
func RejectInvitation(c *fiber.Ctx) error {
	return respondInvitation(c, false)
}

func respondInvitation(c *fiber.Ctx, accept bool) error {
	invitationID, err := primitive.ObjectIDFromHex(c.Params("invitationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid invitation ID format"))
	}

	me := principal(c)
	inv, err := ChatService.RespondInvitation(c.Context(), invitationID, me.Identity, accept)
	if err != nil {
		return chatError(c, err)
	}

	if accept {
		createNotification(c, models.Notification{
			Recipient:        inv.Sender,
			RecipientModel:   inv.SenderModel,
			Type:             models.NotificationInvitationAccepted,
			RelatedUser:      me.Identity.ID,
			RelatedUserModel: me.Identity.Role,
		})
	}

	return c.JSON(fiber.Map{
		"message":    "Invitation " + string(inv.Status),
		"invitation": inv,
	})
}

// GetPendingInvitations lists invitations waiting on the authenticated user.
func GetPendingInvitations(c *fiber.Ctx) error {
	me := principal(c)
	invitations, err := ChatService.PendingInvitations(c.Context(), me.Identity)
	if err != nil {
		return chatError(c, err)
	}
	if invitations == nil {
		invitations = []models.Invitation{}
	}
	return c.JSON(invitations)
}

// GetConnections lists the authenticated user's accepted connections with
// their profiles.
func GetConnections(c *fiber.Ctx) error {
	me := principal(c)
	invitations, err := ChatService.Connections(c.Context(), me.Identity)
	if err != nil {
		return chatError(c, err)
	}

	type connection struct {
		Invitation models.Invitation `json:"invitation"`
		Peer       *models.UserDto   `json:"peer,omitempty"`
	}

	connections := make([]connection, 0, len(invitations))
	for _, inv := range invitations {
		peer := inv.SenderIdentity()
		if peer.Equal(me.Identity) {
			peer = inv.ReceiverIdentity()
		}

		row := connection{Invitation: inv}
		if dto, err := lib.FindUserDto(c.Context(), peer); err == nil {
			row.Peer = dto
		} else {
			log.Printf("Error loading connection profile %s: %v", peer.Key(), err)
		}
		connections = append(connections, row)
	}

	return c.JSON(connections)
}

// createNotification persists a notification, logging instead of failing the
// request when the write does not go through.
func createNotification(c *fiber.Ctx, notification models.Notification) {
	notification.Id = primitive.NewObjectID()
	now := time.Now()
	notification.CreatedAt = now
	notification.UpdatedAt = now

	if _, err := lib.DB.Collection("notifications").InsertOne(c.Context(), notification); err != nil {
		log.Printf("Error creating notification: %v", err)
	}
}
