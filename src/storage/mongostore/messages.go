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

type MessageStore struct {
	coll *mongo.Collection
}

func NewMessageStore(db *mongo.Database) *MessageStore {
	return &MessageStore{coll: db.Collection("messages")}
}

func (s *MessageStore) Insert(ctx context.Context, msg *models.Message) error {
	if msg.Id.IsZero() {
		msg.Id = primitive.NewObjectID()
	}
	now := time.Now()
	msg.CreatedAt = now
	msg.UpdatedAt = now
	_, err := s.coll.InsertOne(ctx, msg)
	return err
}

func (s *MessageStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	var msg models.Message
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *MessageStore) MarkSeen(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":    models.MessageStatusSeen,
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

func (s *MessageStore) History(ctx context.Context, a, b models.Identity, page, limit int64) ([]models.Message, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{
		"$or": []bson.M{
			{
				"sender": a.ID, "senderModel": a.Role,
				"receiver": b.ID, "receiverModel": b.Role,
			},
			{
				"sender": b.ID, "senderModel": b.Role,
				"receiver": a.ID, "receiverModel": a.Role,
			},
		},
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	// Fetched newest-first for pagination; callers want oldest-first within
	// the page.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *MessageStore) Conversations(ctx context.Context, owner models.Identity) ([]models.ConversationSummary, error) {
	match := bson.M{
		"$or": []bson.M{
			{"sender": owner.ID, "senderModel": owner.Role},
			{"receiver": owner.ID, "receiverModel": owner.Role},
		},
	}

	ownerIsSender := bson.M{"$and": bson.A{
		bson.M{"$eq": bson.A{"$sender", owner.ID}},
		bson.M{"$eq": bson.A{"$senderModel", owner.Role}},
	}}
	ownerIsReceiver := bson.M{"$and": bson.A{
		bson.M{"$eq": bson.A{"$receiver", owner.ID}},
		bson.M{"$eq": bson.A{"$receiverModel", owner.Role}},
	}}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		{{Key: "$addFields", Value: bson.M{
			"peerId":    bson.M{"$cond": bson.A{ownerIsSender, "$receiver", "$sender"}},
			"peerModel": bson.M{"$cond": bson.A{ownerIsSender, "$receiverModel", "$senderModel"}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":         bson.M{"id": "$peerId", "role": "$peerModel"},
			"lastMessage": bson.M{"$first": "$$ROOT"},
			"unreadCount": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$and": bson.A{
					ownerIsReceiver,
					bson.M{"$eq": bson.A{"$status", models.MessageStatusUnread}},
				}},
				1, 0,
			}}},
		}}},
		{{Key: "$sort", Value: bson.M{"lastMessage.createdAt": -1}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Peer        models.Identity `bson:"_id"`
		LastMessage models.Message  `bson:"lastMessage"`
		UnreadCount int64           `bson:"unreadCount"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	summaries := make([]models.ConversationSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, models.ConversationSummary{
			Peer:        row.Peer,
			LastMessage: row.LastMessage,
			UnreadCount: row.UnreadCount,
		})
	}
	return summaries, nil
}
