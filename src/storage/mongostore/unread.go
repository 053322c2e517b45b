package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/worklink-app/Backend-Work-Link/src/models"
)

type UnreadStore struct {
	coll *mongo.Collection
}

func NewUnreadStore(db *mongo.Database) *UnreadStore {
	return &UnreadStore{coll: db.Collection("unread_markers")}
}

func (s *UnreadStore) Create(ctx context.Context, marker *models.UnreadMarker) error {
	if marker.Id.IsZero() {
		marker.Id = primitive.NewObjectID()
	}
	marker.CreatedAt = time.Now()
	_, err := s.coll.InsertOne(ctx, marker)
	return err
}

func (s *UnreadStore) DeleteForMessage(ctx context.Context, messageID primitive.ObjectID) error {
	// Deleting a marker that was never created is not an error: messages
	// delivered live have no marker to begin with.
	_, err := s.coll.DeleteMany(ctx, bson.M{"message": messageID})
	return err
}

func (s *UnreadStore) ListForRecipient(ctx context.Context, recipient models.Identity) ([]models.UnreadMarker, error) {
	filter := bson.M{
		"recipient":      recipient.ID,
		"recipientModel": recipient.Role,
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var markers []models.UnreadMarker
	if err := cursor.All(ctx, &markers); err != nil {
		return nil, err
	}
	return markers, nil
}

// EnsureIndexes creates the indexes the chat collections rely on. Called once
// at boot.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("unread_markers").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "message", Value: 1}},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection("messages").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender", Value: 1}, {Key: "receiver", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "receiver", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection("invitations").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sender", Value: 1}, {Key: "receiver", Value: 1}, {Key: "status", Value: 1}},
	})
	return err
}
