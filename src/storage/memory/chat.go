// Package memory holds in-memory implementations of the chat storage
// interfaces. They back the unit tests and local development without a
// running MongoDB.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/worklink-app/Backend-Work-Link/src/models"
	"github.com/worklink-app/Backend-Work-Link/src/storage"
)

type InvitationStore struct {
	mu          sync.RWMutex
	invitations map[primitive.ObjectID]models.Invitation
}

func NewInvitationStore() *InvitationStore {
	return &InvitationStore{invitations: make(map[primitive.ObjectID]models.Invitation)}
}

func (s *InvitationStore) Create(_ context.Context, inv *models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv.Id.IsZero() {
		inv.Id = primitive.NewObjectID()
	}
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	s.invitations[inv.Id] = *inv
	return nil
}

func (s *InvitationStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invitations[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &inv, nil
}

func (s *InvitationStore) FindBetween(_ context.Context, a, b models.Identity, statuses ...models.InvitationStatus) (*models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.invitations {
		sender, receiver := inv.SenderIdentity(), inv.ReceiverIdentity()
		samePair := (sender.Equal(a) && receiver.Equal(b)) || (sender.Equal(b) && receiver.Equal(a))
		if !samePair {
			continue
		}
		if len(statuses) == 0 {
			return &inv, nil
		}
		for _, st := range statuses {
			if inv.Status == st {
				return &inv, nil
			}
		}
	}
	return nil, storage.ErrNotFound
}

func (s *InvitationStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.InvitationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invitations[id]
	if !ok {
		return storage.ErrNotFound
	}
	inv.Status = status
	inv.UpdatedAt = time.Now()
	s.invitations[id] = inv
	return nil
}

func (s *InvitationStore) ListForReceiver(_ context.Context, receiver models.Identity, status models.InvitationStatus) ([]models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Invitation
	for _, inv := range s.invitations {
		if inv.ReceiverIdentity().Equal(receiver) && inv.Status == status {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InvitationStore) ListAcceptedFor(_ context.Context, who models.Identity) ([]models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Invitation
	for _, inv := range s.invitations {
		if inv.Status != models.InvitationStatusAccepted {
			continue
		}
		if inv.SenderIdentity().Equal(who) || inv.ReceiverIdentity().Equal(who) {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

type MessageStore struct {
	mu       sync.RWMutex
	messages []models.Message
	clock    int64
}

func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

func (s *MessageStore) Insert(_ context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.Id.IsZero() {
		msg.Id = primitive.NewObjectID()
	}
	// Monotonic timestamps so ordering is stable even when inserts land in
	// the same wall-clock nanosecond.
	s.clock++
	msg.CreatedAt = time.Now().Add(time.Duration(s.clock) * time.Microsecond)
	msg.UpdatedAt = msg.CreatedAt
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *MessageStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.messages {
		if m.Id == id {
			msg := m
			return &msg, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *MessageStore) MarkSeen(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].Id == id {
			s.messages[i].Status = models.MessageStatusSeen
			s.messages[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *MessageStore) History(_ context.Context, a, b models.Identity, page, limit int64) ([]models.Message, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var between []models.Message
	for _, m := range s.messages {
		sender, receiver := m.SenderIdentity(), m.ReceiverIdentity()
		if (sender.Equal(a) && receiver.Equal(b)) || (sender.Equal(b) && receiver.Equal(a)) {
			between = append(between, m)
		}
	}
	sort.Slice(between, func(i, j int) bool { return between[i].CreatedAt.Before(between[j].CreatedAt) })

	// Page 1 holds the newest messages, returned oldest-first within the page.
	end := int64(len(between)) - (page-1)*limit
	if end <= 0 {
		return nil, nil
	}
	start := end - limit
	if start < 0 {
		start = 0
	}
	return between[start:end], nil
}

func (s *MessageStore) Conversations(_ context.Context, owner models.Identity) ([]models.ConversationSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byPeer := make(map[string]*models.ConversationSummary)
	for _, m := range s.messages {
		sender, receiver := m.SenderIdentity(), m.ReceiverIdentity()
		var peer models.Identity
		switch {
		case sender.Equal(owner):
			peer = receiver
		case receiver.Equal(owner):
			peer = sender
		default:
			continue
		}

		summary, ok := byPeer[peer.Key()]
		if !ok {
			summary = &models.ConversationSummary{Peer: peer}
			byPeer[peer.Key()] = summary
		}
		if m.CreatedAt.After(summary.LastMessage.CreatedAt) {
			summary.LastMessage = m
		}
		if receiver.Equal(owner) && m.Status == models.MessageStatusUnread {
			summary.UnreadCount++
		}
	}

	out := make([]models.ConversationSummary, 0, len(byPeer))
	for _, summary := range byPeer {
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessage.CreatedAt.After(out[j].LastMessage.CreatedAt)
	})
	return out, nil
}

type UnreadStore struct {
	mu      sync.RWMutex
	markers map[primitive.ObjectID]models.UnreadMarker
}

func NewUnreadStore() *UnreadStore {
	return &UnreadStore{markers: make(map[primitive.ObjectID]models.UnreadMarker)}
}

func (s *UnreadStore) Create(_ context.Context, marker *models.UnreadMarker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if marker.Id.IsZero() {
		marker.Id = primitive.NewObjectID()
	}
	marker.CreatedAt = time.Now()
	s.markers[marker.Id] = *marker
	return nil
}

func (s *UnreadStore) DeleteForMessage(_ context.Context, messageID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, marker := range s.markers {
		if marker.Message == messageID {
			delete(s.markers, id)
		}
	}
	return nil
}

func (s *UnreadStore) ListForRecipient(_ context.Context, recipient models.Identity) ([]models.UnreadMarker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.UnreadMarker
	for _, marker := range s.markers {
		if marker.Recipient == recipient.ID && marker.RecipientModel == recipient.Role {
			out = append(out, marker)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
