// Package chat implements invitation-gated messaging, live delivery and
// unread tracking on top of the storage interfaces and the connection
// registry.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/worklink-app/Backend-Work-Link/src/metrics"
	"github.com/worklink-app/Backend-Work-Link/src/models"
	"github.com/worklink-app/Backend-Work-Link/src/storage"
)

// LivePusher delivers an event to every live connection of an identity and
// reports how many connections it was written to. Zero means nothing was
// confirmed delivered. The WebSocket hub implements this.
type LivePusher interface {
	Push(to models.Identity, event string, payload interface{}) int
}

type Service struct {
	invitations storage.InvitationStore
	messages    storage.MessageStore
	unread      storage.UnreadStore
	pusher      LivePusher
}

func NewService(invitations storage.InvitationStore, messages storage.MessageStore, unread storage.UnreadStore, pusher LivePusher) *Service {
	return &Service{
		invitations: invitations,
		messages:    messages,
		unread:      unread,
		pusher:      pusher,
	}
}

// RequiresInvitation reports whether the (sender role, receiver role) pair is
// policy-gated. Recruiters may cold-contact seekers; every other pair needs an
// accepted invitation first.
func RequiresInvitation(sender, receiver models.Role) bool {
	return !(sender == models.RoleRecruiter && receiver == models.RoleSeeker)
}

// RequestInvitation creates a pending invitation from sender to receiver and
// notifies the receiver if connected. A pending or accepted invitation in
// either direction counts as the same relationship and blocks a new one.
func (s *Service) RequestInvitation(ctx context.Context, sender, receiver models.Identity) (*models.Invitation, error) {
	if err := sender.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := receiver.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if sender.Equal(receiver) {
		return nil, fmt.Errorf("%w: cannot invite yourself", ErrValidation)
	}

	_, err := s.invitations.FindBetween(ctx, sender, receiver,
		models.InvitationStatusPending, models.InvitationStatusAccepted)
	if err == nil {
		return nil, fmt.Errorf("%w: an invitation already exists between these users", ErrConflict)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	inv := &models.Invitation{
		Sender:        sender.ID,
		SenderModel:   sender.Role,
		Receiver:      receiver.ID,
		ReceiverModel: receiver.Role,
		Status:        models.InvitationStatusPending,
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		return nil, err
	}
	metrics.InvitationsCreated.Inc()

	s.pusher.Push(receiver, EventInvitationReceived, inv)
	return inv, nil
}

// RespondInvitation accepts or rejects a pending invitation. Only the
// original receiver may respond, and only while the invitation is pending.
func (s *Service) RespondInvitation(ctx context.Context, invitationID primitive.ObjectID, responder models.Identity, accept bool) (*models.Invitation, error) {
	inv, err := s.invitations.FindByID(ctx, invitationID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: invitation not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if !inv.ReceiverIdentity().Equal(responder) {
		return nil, fmt.Errorf("%w: not the receiver of this invitation", ErrForbidden)
	}
	if inv.Status != models.InvitationStatusPending {
		return nil, fmt.Errorf("%w: invitation already %s", ErrConflict, inv.Status)
	}

	status := models.InvitationStatusRejected
	if accept {
		status = models.InvitationStatusAccepted
	}
	if err := s.invitations.UpdateStatus(ctx, invitationID, status); err != nil {
		return nil, err
	}
	inv.Status = status

	if accept {
		s.pusher.Push(inv.SenderIdentity(), EventInvitationAccepted, inv)
	}
	return inv, nil
}

// PendingInvitations lists invitations waiting on the receiver.
func (s *Service) PendingInvitations(ctx context.Context, receiver models.Identity) ([]models.Invitation, error) {
	return s.invitations.ListForReceiver(ctx, receiver, models.InvitationStatusPending)
}

// Connections lists every accepted invitation the identity is part of.
func (s *Service) Connections(ctx context.Context, who models.Identity) ([]models.Invitation, error) {
	return s.invitations.ListAcceptedFor(ctx, who)
}

// SendMessage persists a message from sender to receiver and delivers it
// live when possible. Gated pairs require an accepted invitation; without one
// the call fails and nothing is persisted. An unread marker is created unless
// live delivery to the receiver was confirmed.
func (s *Service) SendMessage(ctx context.Context, sender, receiver models.Identity, body, attachment string) (*models.Message, error) {
	if err := sender.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := receiver.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if body == "" && attachment == "" {
		return nil, fmt.Errorf("%w: message body is required", ErrValidation)
	}
	if sender.Equal(receiver) {
		return nil, fmt.Errorf("%w: cannot message yourself", ErrValidation)
	}

	if RequiresInvitation(sender.Role, receiver.Role) {
		_, err := s.invitations.FindBetween(ctx, sender, receiver, models.InvitationStatusAccepted)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: messaging requires an accepted invitation", ErrForbidden)
		}
		if err != nil {
			return nil, err
		}
	}

	msg := &models.Message{
		Sender:        sender.ID,
		SenderModel:   sender.Role,
		Receiver:      receiver.ID,
		ReceiverModel: receiver.Role,
		Body:          body,
		Attachment:    attachment,
		Status:        models.MessageStatusUnread,
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, err
	}

	// Delivery is only confirmed by a successful write to at least one of the
	// receiver's connections. Anything less gets an unread marker, so the
	// message can never silently disappear between persistence and push.
	delivered := s.pusher.Push(receiver, EventNewMessage, msg)
	if delivered > 0 {
		metrics.MessagesDeliveredLive.Inc()
	} else {
		metrics.MessagesDeferred.Inc()
		marker := &models.UnreadMarker{
			Recipient:      receiver.ID,
			RecipientModel: receiver.Role,
			Sender:         sender.ID,
			SenderModel:    sender.Role,
			Message:        msg.Id,
		}
		if err := s.unread.Create(ctx, marker); err != nil {
			log.Printf("Error creating unread marker for message %s: %v", msg.Id.Hex(), err)
		}
	}

	// Echo to the sender's other devices.
	s.pusher.Push(sender, EventNewMessage, msg)

	return msg, nil
}

// MarkSeen flips a message to seen, removes its unread marker and notifies
// the sender. Calling it again on an already-seen message is a no-op success.
func (s *Service) MarkSeen(ctx context.Context, messageID primitive.ObjectID, recipient models.Identity) (*models.Message, error) {
	msg, err := s.messages.FindByID(ctx, messageID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: message not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if !msg.ReceiverIdentity().Equal(recipient) {
		return nil, fmt.Errorf("%w: message not found", ErrNotFound)
	}

	if msg.Status == models.MessageStatusSeen {
		return msg, nil
	}

	if err := s.messages.MarkSeen(ctx, messageID); err != nil {
		return nil, err
	}
	msg.Status = models.MessageStatusSeen

	if err := s.unread.DeleteForMessage(ctx, messageID); err != nil {
		log.Printf("Error deleting unread marker for message %s: %v", messageID.Hex(), err)
	}

	s.pusher.Push(msg.SenderIdentity(), EventMessageSeen, msg)
	return msg, nil
}

// History returns one page of the conversation between owner and peer,
// oldest first within the page. Page 1 is the most recent page.
func (s *Service) History(ctx context.Context, owner, peer models.Identity, page, limit int64) ([]models.Message, error) {
	if err := peer.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.messages.History(ctx, owner, peer, page, limit)
}

// Conversations returns the most recent message per peer with unread counts,
// newest conversation first.
func (s *Service) Conversations(ctx context.Context, owner models.Identity) ([]models.ConversationSummary, error) {
	return s.messages.Conversations(ctx, owner)
}

// UnreadMarkers lists the recipient's undelivered-message markers.
func (s *Service) UnreadMarkers(ctx context.Context, recipient models.Identity) ([]models.UnreadMarker, error) {
	return s.unread.ListForRecipient(ctx, recipient)
}

// Typing relays a typing indicator to the peer. Nothing is persisted and
// delivery is best-effort.
func (s *Service) Typing(sender, receiver models.Identity) {
	s.pusher.Push(receiver, EventTyping, map[string]interface{}{
		"from": sender,
	})
}
