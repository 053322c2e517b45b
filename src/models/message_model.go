package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	Id            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Sender        primitive.ObjectID `json:"sender" bson:"sender"`
	SenderModel   Role               `json:"senderModel" bson:"senderModel"`
	Receiver      primitive.ObjectID `json:"receiver" bson:"receiver"`
	ReceiverModel Role               `json:"receiverModel" bson:"receiverModel"`
	Body          string             `json:"body" bson:"body"`
	Attachment    string             `json:"attachment,omitempty" bson:"attachment,omitempty"`
	Status        MessageStatus      `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type MessageStatus string

const (
	MessageStatusUnread MessageStatus = "unread"
	MessageStatusSeen   MessageStatus = "seen"
)

func (m Message) SenderIdentity() Identity {
	return Identity{ID: m.Sender, Role: m.SenderModel}
}

func (m Message) ReceiverIdentity() Identity {
	return Identity{ID: m.Receiver, Role: m.ReceiverModel}
}

// UnreadMarker records that a message was never delivered live to its
// recipient. It is deleted when the message is marked seen; it must never
// outlive the message it points to.
type UnreadMarker struct {
	Id             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Recipient      primitive.ObjectID `json:"recipient" bson:"recipient"`
	RecipientModel Role               `json:"recipientModel" bson:"recipientModel"`
	Sender         primitive.ObjectID `json:"sender" bson:"sender"`
	SenderModel    Role               `json:"senderModel" bson:"senderModel"`
	Message        primitive.ObjectID `json:"message" bson:"message"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

// ConversationSummary is one row of the conversation list: the peer, the most
// recent message exchanged with them, and how many of their messages the owner
// has not yet seen.
type ConversationSummary struct {
	Peer        Identity `json:"peer" bson:"peer"`
	PeerProfile *UserDto `json:"peerProfile,omitempty" bson:"-"`
	LastMessage Message  `json:"lastMessage" bson:"lastMessage"`
	UnreadCount int64    `json:"unreadCount" bson:"unreadCount"`
}
