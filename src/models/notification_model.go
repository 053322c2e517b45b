package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	Id               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Recipient        primitive.ObjectID `json:"recipient" bson:"recipient"`
	RecipientModel   Role               `json:"recipientModel" bson:"recipientModel"`
	Type             NotificationType   `json:"type" bson:"type"`
	RelatedUser      primitive.ObjectID `json:"relatedUser,omitempty" bson:"relatedUser,omitempty"`
	RelatedUserModel Role               `json:"relatedUserModel,omitempty" bson:"relatedUserModel,omitempty"`
	RelatedPost      primitive.ObjectID `json:"relatedPost,omitempty" bson:"relatedPost,omitempty"`
	RelatedJob       primitive.ObjectID `json:"relatedJob,omitempty" bson:"relatedJob,omitempty"`
	Read             bool               `json:"read" bson:"read"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type NotificationType string

const (
	NotificationInvitationReceived  NotificationType = "invitationReceived"
	NotificationInvitationAccepted  NotificationType = "invitationAccepted"
	NotificationPostLiked           NotificationType = "postLiked"
	NotificationPostCommented       NotificationType = "postCommented"
	NotificationApplicationReceived NotificationType = "applicationReceived"
)
