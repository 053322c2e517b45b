package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/worklink-app/Backend-Work-Link/src/models"
	"github.com/worklink-app/Backend-Work-Link/src/storage"
)

type InvitationStore struct {
	coll *mongo.Collection
}

func NewInvitationStore(db *mongo.Database) *InvitationStore {
	return &InvitationStore{coll: db.Collection("invitations")}
}

func (s *InvitationStore) Create(ctx context.Context, inv *models.Invitation) error {
	if inv.Id.IsZero() {
		inv.Id = primitive.NewObjectID()
	}
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	_, err := s.coll.InsertOne(ctx, inv)
	return err
}

func (s *InvitationStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *InvitationStore) FindBetween(ctx context.Context, a, b models.Identity, statuses ...models.InvitationStatus) (*models.Invitation, error) {
	// Both directions: A->B and B->A count as the same relationship.
	filter := bson.M{
		"$or": []bson.M{
			pairFilter(a, b),
			pairFilter(b, a),
		},
	}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}

	var inv models.Invitation
	err := s.coll.FindOne(ctx, filter).Decode(&inv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func pairFilter(sender, receiver models.Identity) bson.M {
	return bson.M{
		"sender":        sender.ID,
		"senderModel":   sender.Role,
		"receiver":      receiver.ID,
		"receiverModel": receiver.Role,
	}
}

func (s *InvitationStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.InvitationStatus) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *InvitationStore) ListForReceiver(ctx context.Context, receiver models.Identity, status models.InvitationStatus) ([]models.Invitation, error) {
	filter := bson.M{
		"receiver":      receiver.ID,
		"receiverModel": receiver.Role,
		"status":        status,
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var invitations []models.Invitation
	if err := cursor.All(ctx, &invitations); err != nil {
		return nil, err
	}
	return invitations, nil
}

func (s *InvitationStore) ListAcceptedFor(ctx context.Context, who models.Identity) ([]models.Invitation, error) {
	filter := bson.M{
		"status": models.InvitationStatusAccepted,
		"$or": []bson.M{
			{"sender": who.ID, "senderModel": who.Role},
			{"receiver": who.ID, "receiverModel": who.Role},
		},
	}
	opts := options.Find().SetSort(bson.M{"updatedAt": -1})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var invitations []models.Invitation
	if err := cursor.All(ctx, &invitations); err != nil {
		return nil, err
	}
	return invitations, nil
}
