package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/worklink-app/Backend-Work-Link/src/lib"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// SendMessage sends a chat message from the authenticated user to the
// identity in the path. Gated pairs require an accepted invitation.
func SendMessage(c *fiber.Ctx) error {
	receiver, err := identityFromParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	var body struct {
		Body       string `json:"body"`
		Attachment string `json:"attachment"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	me := principal(c)
	msg, err := ChatService.SendMessage(c.Context(), me.Identity, receiver, body.Body, body.Attachment)
	if err != nil {
		return chatError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

// MarkMessageSeen marks a message addressed to the authenticated user as
// seen. Repeating the call is a no-op success.
func MarkMessageSeen(c *fiber.Ctx) error {
	messageID, err := primitive.ObjectIDFromHex(c.Params("messageId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid message ID format"))
	}

	me := principal(c)
	msg, err := ChatService.MarkSeen(c.Context(), messageID, me.Identity)
	if err != nil {
		return chatError(c, err)
	}

	return c.JSON(msg)
}

// GetChatHistory returns one page of the conversation with the identity in
// the path. Page 1 is the most recent page; messages come back oldest first.
func GetChatHistory(c *fiber.Ctx) error {
	peer, err := identityFromParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	me := principal(c)
	messages, err := ChatService.History(c.Context(), me.Identity, peer, page, limit)
	if err != nil {
		return chatError(c, err)
	}
	if messages == nil {
		messages = []models.Message{}
	}

	return c.JSON(fiber.Map{
		"messages": messages,
		"page":     page,
		"limit":    limit,
	})
}

// GetConversations returns the most recent message per peer with unread
// counts, enriched with the peers' profiles.
func GetConversations(c *fiber.Ctx) error {
	me := principal(c)
	summaries, err := ChatService.Conversations(c.Context(), me.Identity)
	if err != nil {
		return chatError(c, err)
	}

	for i := range summaries {
		dto, err := lib.FindUserDto(c.Context(), summaries[i].Peer)
		if err != nil {
			log.Printf("Error loading conversation peer %s: %v", summaries[i].Peer.Key(), err)
			continue
		}
		summaries[i].PeerProfile = dto
	}
	if summaries == nil {
		summaries = []models.ConversationSummary{}
	}

	return c.JSON(summaries)
}

// GetUnreadMessages lists the authenticated user's unread markers.
func GetUnreadMessages(c *fiber.Ctx) error {
	me := principal(c)
	markers, err := ChatService.UnreadMarkers(c.Context(), me.Identity)
	if err != nil {
		return chatError(c, err)
	}
	if markers == nil {
		markers = []models.UnreadMarker{}
	}
	return c.JSON(markers)
}

// Typing relays a typing indicator to the identity in the path.
func Typing(c *fiber.Ctx) error {
	receiver, err := identityFromParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	me := principal(c)
	ChatService.Typing(me.Identity, receiver)
	return c.JSON(lib.MessageResponse("Typing indicator sent"))
}
