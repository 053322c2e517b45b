package ws

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/worklink-app/Backend-Work-Link/src/chat"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// Client is one live WebSocket connection for an authenticated identity.
type Client struct {
	id        string
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	principal models.Principal
	svc       *chat.Service
}

// inboundEvent is the frame clients send: a type plus the fields the type
// needs.
type inboundEvent struct {
	Type       string          `json:"type"`
	To         models.Identity `json:"to"`
	Body       string          `json:"body"`
	Attachment string          `json:"attachment"`
	MessageID  string          `json:"messageId"`
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var evt inboundEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			c.sendError("invalid_json")
			continue
		}
		c.handleEvent(evt)
	}
}

func (c *Client) handleEvent(evt inboundEvent) {
	me := c.principal.Identity
	ctx, cancel := requestContext()
	defer cancel()

	switch evt.Type {
	case "send":
		msg, err := c.svc.SendMessage(ctx, me, evt.To, evt.Body, evt.Attachment)
		if err != nil {
			c.sendError(errorCode(err))
			return
		}
		// The hub already echoed the message to every connection of the
		// sender, this one included; nothing more to do.
		_ = msg
	case "seen":
		messageID, err := primitive.ObjectIDFromHex(evt.MessageID)
		if err != nil {
			c.sendError("invalid_message_id")
			return
		}
		if _, err := c.svc.MarkSeen(ctx, messageID, me); err != nil {
			c.sendError(errorCode(err))
		}
	case "typing":
		if err := evt.To.Validate(); err != nil {
			c.sendError("invalid_recipient")
			return
		}
		c.svc.Typing(me, evt.To)
	case "active":
		// Explicit "I am active" announcement: re-send the online set to this
		// connection.
		c.hub.SendPresence(c)
	default:
		c.sendError("unsupported_type")
	}
}

func (c *Client) sendError(code string) {
	data, err := json.Marshal(Envelope{Event: "error", Data: code})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, chat.ErrForbidden):
		return "forbidden"
	case errors.Is(err, chat.ErrNotFound):
		return "not_found"
	case errors.Is(err, chat.ErrConflict):
		return "conflict"
	case errors.Is(err, chat.ErrValidation):
		return "invalid_request"
	default:
		log.Printf("WS handler error: %v", err)
		return "internal_error"
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
