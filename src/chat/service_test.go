package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/worklink-app/Backend-Work-Link/src/models"
	"github.com/worklink-app/Backend-Work-Link/src/storage/memory"
)

type pushedEvent struct {
	To    string
	Event string
}

// fakePusher simulates the connection registry: identities listed in online
// report that many live connections, everyone else reports zero.
type fakePusher struct {
	online map[string]int
	events []pushedEvent
}

func newFakePusher() *fakePusher {
	return &fakePusher{online: make(map[string]int)}
}

func (p *fakePusher) Push(to models.Identity, event string, _ interface{}) int {
	p.events = append(p.events, pushedEvent{To: to.Key(), Event: event})
	return p.online[to.Key()]
}

func (p *fakePusher) eventsFor(to models.Identity, event string) int {
	count := 0
	for _, e := range p.events {
		if e.To == to.Key() && e.Event == event {
			count++
		}
	}
	return count
}

type fixture struct {
	svc         *Service
	invitations *memory.InvitationStore
	messages    *memory.MessageStore
	unread      *memory.UnreadStore
	pusher      *fakePusher
}

func newFixture() *fixture {
	invitations := memory.NewInvitationStore()
	messages := memory.NewMessageStore()
	unread := memory.NewUnreadStore()
	pusher := newFakePusher()
	return &fixture{
		svc:         NewService(invitations, messages, unread, pusher),
		invitations: invitations,
		messages:    messages,
		unread:      unread,
		pusher:      pusher,
	}
}

func seeker() models.Identity {
	return models.Identity{ID: primitive.NewObjectID(), Role: models.RoleSeeker}
}

func recruiter() models.Identity {
	return models.Identity{ID: primitive.NewObjectID(), Role: models.RoleRecruiter}
}

func acceptInvitation(t *testing.T, f *fixture, sender, receiver models.Identity) {
	t.Helper()
	ctx := context.Background()
	inv, err := f.svc.RequestInvitation(ctx, sender, receiver)
	require.NoError(t, err)
	_, err = f.svc.RespondInvitation(ctx, inv.Id, receiver, true)
	require.NoError(t, err)
}

func TestSendMessageWithoutInvitationIsForbidden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := seeker(), recruiter()

	_, err := f.svc.SendMessage(ctx, a, b, "hello", "")
	require.ErrorIs(t, err, ErrForbidden)

	// Nothing persisted.
	history, err := f.svc.History(ctx, a, b, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRecruiterCanColdMessageSeeker(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r, s := recruiter(), seeker()

	msg, err := f.svc.SendMessage(ctx, r, s, "we have a role for you", "")
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusUnread, msg.Status)
}

func TestGatedPairs(t *testing.T) {
	assert.True(t, RequiresInvitation(models.RoleSeeker, models.RoleRecruiter))
	assert.True(t, RequiresInvitation(models.RoleRecruiter, models.RoleRecruiter))
	assert.True(t, RequiresInvitation(models.RoleSeeker, models.RoleSeeker))
	assert.False(t, RequiresInvitation(models.RoleRecruiter, models.RoleSeeker))
}

func TestSendMessageRejectsUnknownRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	bad := models.Identity{ID: primitive.NewObjectID(), Role: "admin"}
	_, err := f.svc.SendMessage(ctx, seeker(), bad, "hi", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestOnlineRecipientGetsNoUnreadMarker(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := seeker(), recruiter()
	acceptInvitation(t, f, a, b)

	f.pusher.online[b.Key()] = 1
	msg, err := f.svc.SendMessage(ctx, a, b, "hello", "")
	require.NoError(t, err)

	markers, err := f.unread.ListForRecipient(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, markers)

	// Pushed to the receiver and echoed back to the sender.
	assert.Equal(t, 1, f.pusher.eventsFor(b, EventNewMessage))
	assert.Equal(t, 1, f.pusher.eventsFor(a, EventNewMessage))
	assert.Equal(t, models.MessageStatusUnread, msg.Status)
}

func TestOfflineRecipientGetsExactlyOneMarker(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := seeker(), recruiter()
	acceptInvitation(t, f, a, b)

	msg, err := f.svc.SendMessage(ctx, a, b, "hi", "")
	require.NoError(t, err)

	markers, err := f.unread.ListForRecipient(ctx, b)
	require.NoError(t, err)
	require.Len(t, markers, 1)
	assert.Equal(t, msg.Id, markers[0].Message)
	assert.Equal(t, a.ID, markers[0].Sender)

	// The message still shows up when the recipient loads history.
	history, err := f.svc.History(ctx, b, a, 1, 20)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "hi", history[0].Body)

	// Marking seen removes the marker and notifies the sender.
	seen, err := f.svc.MarkSeen(ctx, msg.Id, b)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusSeen, seen.Status)

	markers, err = f.unread.ListForRecipient(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, markers)
	assert.Equal(t, 1, f.pusher.eventsFor(a, EventMessageSeen))
}

func TestMarkSeenIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := seeker(), recruiter()
	acceptInvitation(t, f, a, b)

	msg, err := f.svc.SendMessage(ctx, a, b, "hi", "")
	require.NoError(t, err)

	_, err = f.svc.MarkSeen(ctx, msg.Id, b)
	require.NoError(t, err)

	// Second call succeeds without another seen notification.
	seen, err := f.svc.MarkSeen(ctx, msg.Id, b)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusSeen, seen.Status)
	assert.Equal(t, 1, f.pusher.eventsFor(a, EventMessageSeen))
}

func TestMarkSeenRequiresRecipient(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := seeker(), recruiter()
	acceptInvitation(t, f, a, b)

	msg, err := f.svc.SendMessage(ctx, a, b, "hi", "")
	require.NoError(t, err)

	// The sender cannot mark their own message seen, nor can a stranger.
	_, err = f.svc.MarkSeen(ctx, msg.Id, a)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.MarkSeen(ctx, msg.Id, seeker())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.MarkSeen(ctx, primitive.NewObjectID(), b)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInvitationConflictInEitherDirection(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := seeker(), recruiter()

	_, err := f.svc.RequestInvitation(ctx, a, b)
	require.NoError(t, err)

	// Same direction.
	_, err = f.svc.RequestInvitation(ctx, a, b)
	require.ErrorIs(t, err, ErrConflict)

	// Opposite direction: A->B and B->A are the same relationship.
	_, err = f.svc.RequestInvitation(ctx, b, a)
	require.ErrorIs(t, err, ErrConflict)
}

func TestRejectedInvitationAllowsNewRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := seeker(), recruiter()

	inv, err := f.svc.RequestInvitation(ctx, a, b)
	require.NoError(t, err)
	_, err = f.svc.RespondInvitation(ctx, inv.Id, b, false)
	require.NoError(t, err)

	// A rejected invitation does not block trying again.
	_, err = f.svc.RequestInvitation(ctx, a, b)
	require.NoError(t, err)
}

func TestRespondInvitationAuthorization(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := seeker(), recruiter()

	inv, err := f.svc.RequestInvitation(ctx, a, b)
	require.NoError(t, err)

	// The sender cannot accept their own invitation.
	_, err = f.svc.RespondInvitation(ctx, inv.Id, a, true)
	require.ErrorIs(t, err, ErrForbidden)

	// Unknown invitation.
	_, err = f.svc.RespondInvitation(ctx, primitive.NewObjectID(), b, true)
	require.ErrorIs(t, err, ErrNotFound)

	// Accepting is terminal: a second response conflicts.
	_, err = f.svc.RespondInvitation(ctx, inv.Id, b, true)
	require.NoError(t, err)
	_, err = f.svc.RespondInvitation(ctx, inv.Id, b, false)
	require.ErrorIs(t, err, ErrConflict)
}

func TestInvitationNotifications(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := seeker(), recruiter()

	inv, err := f.svc.RequestInvitation(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, 1, f.pusher.eventsFor(b, EventInvitationReceived))

	_, err = f.svc.RespondInvitation(ctx, inv.Id, b, true)
	require.NoError(t, err)
	assert.Equal(t, 1, f.pusher.eventsFor(a, EventInvitationAccepted))
}

func TestInviteAcceptSendSeenScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := seeker(), recruiter()

	// A invites B, B accepts, A sends "hello" while B is connected.
	acceptInvitation(t, f, a, b)
	f.pusher.online[b.Key()] = 1

	msg, err := f.svc.SendMessage(ctx, a, b, "hello", "")
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusUnread, msg.Status)
	assert.Equal(t, 1, f.pusher.eventsFor(b, EventNewMessage))

	markers, err := f.unread.ListForRecipient(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, markers)

	// B acknowledges seen.
	seen, err := f.svc.MarkSeen(ctx, msg.Id, b)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusSeen, seen.Status)

	markers, err = f.unread.ListForRecipient(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, markers)
}

func TestHistoryPagination(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := seeker(), recruiter()
	acceptInvitation(t, f, a, b)

	for _, body := range []string{"one", "two", "three", "four", "five"} {
		_, err := f.svc.SendMessage(ctx, a, b, body, "")
		require.NoError(t, err)
	}

	// Page 1 holds the newest messages, oldest first within the page.
	page1, err := f.svc.History(ctx, a, b, 1, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "four", page1[0].Body)
	assert.Equal(t, "five", page1[1].Body)

	page3, err := f.svc.History(ctx, a, b, 3, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "one", page3[0].Body)

	page4, err := f.svc.History(ctx, a, b, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, page4)
}

func TestConversationsUnreadCounts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b, c := seeker(), recruiter(), recruiter()
	acceptInvitation(t, f, a, b)
	acceptInvitation(t, f, a, c)

	_, err := f.svc.SendMessage(ctx, b, a, "first", "")
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, b, a, "second", "")
	require.NoError(t, err)
	msg, err := f.svc.SendMessage(ctx, c, a, "from c", "")
	require.NoError(t, err)

	summaries, err := f.svc.Conversations(ctx, a)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Newest conversation first.
	assert.Equal(t, c.Key(), summaries[0].Peer.Key())
	assert.Equal(t, int64(1), summaries[0].UnreadCount)
	assert.Equal(t, b.Key(), summaries[1].Peer.Key())
	assert.Equal(t, int64(2), summaries[1].UnreadCount)
	assert.Equal(t, "second", summaries[1].LastMessage.Body)

	// Seeing C's message clears that conversation's count.
	_, err = f.svc.MarkSeen(ctx, msg.Id, a)
	require.NoError(t, err)

	summaries, err = f.svc.Conversations(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(0), summaries[0].UnreadCount)
}

func TestSendMessageValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := seeker()

	_, err := f.svc.SendMessage(ctx, a, a, "hi", "")
	require.ErrorIs(t, err, ErrValidation)

	b := recruiter()
	acceptInvitation(t, f, a, b)
	_, err = f.svc.SendMessage(ctx, a, b, "", "")
	require.ErrorIs(t, err, ErrValidation)

	// An attachment alone is a valid message.
	_, err = f.svc.SendMessage(ctx, a, b, "", "https://cdn.example.com/cv.pdf")
	require.NoError(t, err)
}

func TestSelfInvitationRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := seeker()

	_, err := f.svc.RequestInvitation(ctx, a, a)
	require.ErrorIs(t, err, ErrValidation)
}
