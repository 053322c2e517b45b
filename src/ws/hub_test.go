package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/worklink-app/Backend-Work-Link/src/chat"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

func testClient(hub *Hub, identity models.Identity) *Client {
	return &Client{
		id:        primitive.NewObjectID().Hex(),
		hub:       hub,
		send:      make(chan []byte, 16),
		principal: models.Principal{Identity: identity},
	}
}

func drain(c *Client) {
	for {
		select {
		case <-c.send:
		default:
			return
		}
	}
}

func TestHubPushCountsConnections(t *testing.T) {
	hub := NewHub(NewMemoryPresence())
	id := models.Identity{ID: primitive.NewObjectID(), Role: models.RoleSeeker}

	// Same identity on two devices.
	c1 := testClient(hub, id)
	c2 := testClient(hub, id)
	hub.Register(c1)
	hub.Register(c2)

	drain(c1)
	drain(c2)
	delivered := hub.Push(id, chat.EventNewMessage, map[string]string{"body": "hi"})
	assert.Equal(t, 2, delivered)

	// One device disconnects, the identity stays reachable.
	hub.Unregister(c1)
	drain(c2)
	delivered = hub.Push(id, chat.EventNewMessage, map[string]string{"body": "again"})
	assert.Equal(t, 1, delivered)

	hub.Unregister(c2)
	delivered = hub.Push(id, chat.EventNewMessage, nil)
	assert.Equal(t, 0, delivered)
}

func TestHubPushToUnknownIdentity(t *testing.T) {
	hub := NewHub(NewMemoryPresence())
	id := models.Identity{ID: primitive.NewObjectID(), Role: models.RoleRecruiter}
	assert.Equal(t, 0, hub.Push(id, chat.EventNewMessage, nil))
}

func TestHubUnregisterTwiceIsSafe(t *testing.T) {
	hub := NewHub(NewMemoryPresence())
	id := models.Identity{ID: primitive.NewObjectID(), Role: models.RoleSeeker}
	c := testClient(hub, id)
	hub.Register(c)
	hub.Unregister(c)
	// A second unregister (read pump and write pump racing) must not panic.
	hub.Unregister(c)
}

func TestHubPresenceTracksIdentitiesNotSockets(t *testing.T) {
	presence := NewMemoryPresence()
	hub := NewHub(presence)
	id := models.Identity{ID: primitive.NewObjectID(), Role: models.RoleSeeker}

	c1 := testClient(hub, id)
	c2 := testClient(hub, id)
	hub.Register(c1)
	hub.Register(c2)

	online, err := presence.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{id.Key()}, online)

	// Still online with one connection left.
	hub.Unregister(c1)
	online, err = presence.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{id.Key()}, online)

	hub.Unregister(c2)
	online, err = presence.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, online)
}

func TestHubBroadcastsPresenceOnRegister(t *testing.T) {
	hub := NewHub(NewMemoryPresence())
	a := models.Identity{ID: primitive.NewObjectID(), Role: models.RoleSeeker}
	b := models.Identity{ID: primitive.NewObjectID(), Role: models.RoleRecruiter}

	ca := testClient(hub, a)
	hub.Register(ca)
	drain(ca)

	cb := testClient(hub, b)
	hub.Register(cb)

	// The already-connected client hears about the newcomer.
	raw := <-ca.send
	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, chat.EventOnlineUsers, env.Event)

	keys, ok := env.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, a.Key())
	assert.Contains(t, keys, b.Key())
}

func TestHubFullBufferNotCountedAsDelivered(t *testing.T) {
	hub := NewHub(NewMemoryPresence())
	id := models.Identity{ID: primitive.NewObjectID(), Role: models.RoleSeeker}

	c := &Client{
		id:        primitive.NewObjectID().Hex(),
		hub:       hub,
		send:      make(chan []byte, 1),
		principal: models.Principal{Identity: id},
	}
	hub.Register(c)
	drain(c)

	assert.Equal(t, 1, hub.Push(id, chat.EventNewMessage, "first"))
	// Buffer is full now; the push is skipped, not blocked.
	assert.Equal(t, 0, hub.Push(id, chat.EventNewMessage, "second"))
}

func TestMemoryPresenceRefcounts(t *testing.T) {
	p := NewMemoryPresence()
	ctx := context.Background()

	require.NoError(t, p.Add(ctx, "seeker_a"))
	require.NoError(t, p.Add(ctx, "seeker_a"))
	require.NoError(t, p.Add(ctx, "recruiter_b"))

	online, err := p.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"recruiter_b", "seeker_a"}, online)

	require.NoError(t, p.Remove(ctx, "seeker_a"))
	online, err = p.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, online, "seeker_a")

	require.NoError(t, p.Remove(ctx, "seeker_a"))
	require.NoError(t, p.Remove(ctx, "recruiter_b"))
	online, err = p.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, online)
}
