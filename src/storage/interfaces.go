// Package storage defines the persistence interfaces behind the chat
// subsystem. MongoDB implementations live in mongostore; in-memory
// implementations in memory back the unit tests.
package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// ErrNotFound is returned by every store when the requested document does not
// exist, regardless of backend.
var ErrNotFound = errors.New("not found")

type InvitationStore interface {
	Create(ctx context.Context, inv *models.Invitation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invitation, error)
	// FindBetween looks up an invitation between the two identities in either
	// direction, restricted to the given statuses.
	FindBetween(ctx context.Context, a, b models.Identity, statuses ...models.InvitationStatus) (*models.Invitation, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.InvitationStatus) error
	ListForReceiver(ctx context.Context, receiver models.Identity, status models.InvitationStatus) ([]models.Invitation, error)
	// ListAcceptedFor returns every accepted invitation the identity is part
	// of, on either side.
	ListAcceptedFor(ctx context.Context, who models.Identity) ([]models.Invitation, error)
}

type MessageStore interface {
	Insert(ctx context.Context, msg *models.Message) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error)
	MarkSeen(ctx context.Context, id primitive.ObjectID) error
	// History returns messages between the two identities, oldest first within
	// the requested page. Page numbering starts at 1; page 1 is the most
	// recent messages.
	History(ctx context.Context, a, b models.Identity, page, limit int64) ([]models.Message, error)
	// Conversations returns the most recent message per peer, newest
	// conversation first, with the owner's unread count per peer.
	Conversations(ctx context.Context, owner models.Identity) ([]models.ConversationSummary, error)
}

type UnreadStore interface {
	Create(ctx context.Context, marker *models.UnreadMarker) error
	DeleteForMessage(ctx context.Context, messageID primitive.ObjectID) error
	ListForRecipient(ctx context.Context, recipient models.Identity) ([]models.UnreadMarker, error)
}
