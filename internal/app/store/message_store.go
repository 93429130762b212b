package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TaiefArnob/InstaVista/internal/app/model"
)

// MessageStore persists conversations and their messages.
type MessageStore struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// NewMessageStore returns a MessageStore over the conversations and
// messages collections.
func NewMessageStore(mdb *mongo.Database) *MessageStore {
	return &MessageStore{
		conversations: mdb.Collection("conversations"),
		messages:      mdb.Collection("messages"),
	}
}

// pairFilter matches the conversation holding both participants,
// regardless of who opened it.
func pairFilter(a, b primitive.ObjectID) bson.M {
	return bson.M{"participants": bson.M{"$all": bson.A{a, b}}}
}

// Send stores a message between sender and receiver, creating the
// conversation on first contact. The message document is fully committed
// before Send returns, so callers may notify the receiver afterwards.
func (s *MessageStore) Send(ctx context.Context, sender, receiver primitive.ObjectID, text string) (*model.Message, error) {
	after := options.After
	upsert := true
	opts := &options.FindOneAndUpdateOptions{ReturnDocument: &after, Upsert: &upsert}

	var conversation model.Conversation
	err := s.conversations.FindOneAndUpdate(ctx,
		pairFilter(sender, receiver),
		bson.M{"$setOnInsert": bson.M{
			"participants": bson.A{sender, receiver},
			"messages":     bson.A{},
		}},
		opts,
	).Decode(&conversation)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		ID:         primitive.NewObjectID(),
		SenderID:   sender,
		ReceiverID: receiver,
		Message:    text,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := s.messages.InsertOne(ctx, message); err != nil {
		return nil, err
	}

	_, err = s.conversations.UpdateOne(ctx,
		bson.M{"_id": conversation.ID},
		bson.M{"$push": bson.M{"messages": message.ID}},
	)
	if err != nil {
		return nil, err
	}

	return message, nil
}

// History lists the messages between two users in chronological order.
// A missing conversation yields an empty history, not an error.
func (s *MessageStore) History(ctx context.Context, a, b primitive.ObjectID) ([]model.Message, error) {
	var conversation model.Conversation
	err := s.conversations.FindOne(ctx, pairFilter(a, b)).Decode(&conversation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return []model.Message{}, nil
		}
		return nil, err
	}

	if len(conversation.Messages) == 0 {
		return []model.Message{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.messages.Find(ctx, bson.M{"_id": bson.M{"$in": conversation.Messages}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var history []model.Message
	if err := cursor.All(ctx, &history); err != nil {
		return nil, err
	}

	return history, nil
}
