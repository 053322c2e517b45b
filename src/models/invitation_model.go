package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invitation is the request/accept handshake that gates messaging between two
// identities. Sender and receiver are polymorphic references: the ObjectID
// plus a role discriminator naming the collection it points into.
type Invitation struct {
	Id            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Sender        primitive.ObjectID `json:"sender" bson:"sender"`
	SenderModel   Role               `json:"senderModel" bson:"senderModel"`
	Receiver      primitive.ObjectID `json:"receiver" bson:"receiver"`
	ReceiverModel Role               `json:"receiverModel" bson:"receiverModel"`
	Status        InvitationStatus   `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRejected InvitationStatus = "rejected"
)

func (i Invitation) SenderIdentity() Identity {
	return Identity{ID: i.Sender, Role: i.SenderModel}
}

func (i Invitation) ReceiverIdentity() Identity {
	return Identity{ID: i.Receiver, Role: i.ReceiverModel}
}
