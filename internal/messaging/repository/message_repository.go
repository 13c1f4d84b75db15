package repository

import (
	"context"
	"sort"
	"time"

	"skill_exchange_service/internal/messaging/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageStore durable append-only log of conversation messages
type MessageStore interface {
	// Append persist one message. Persistence is the durability boundary:
	// the relay must not deliver a message whose Append failed.
	Append(ctx context.Context, msg domain.ChatMessage) error
	// History full ordered history of one conversation
	History(ctx context.Context, conversationID string) ([]domain.ChatMessage, error)
}

type chatMessageRepository struct {
	coll *mongo.Collection
}

// NewMongoMessageStore create a MessageStore over the chat_messages collection
func NewMongoMessageStore(db *mongo.Database) MessageStore {
	return &chatMessageRepository{
		coll: db.Collection("chat_messages"),
	}
}

// Append push the message into the daily bucket of its conversation,
// creating the bucket when it is the first message of the day
func (r *chatMessageRepository) Append(ctx context.Context, msg domain.ChatMessage) error {
	date := time.UnixMilli(msg.SentAt).Format("2006-01-02")

	filter := bson.M{"conversation_id": msg.ConversationID, "date": date}
	update := bson.M{"$push": bson.M{"messages": msg}}
	opts := options.Update().SetUpsert(true)

	_, err := r.coll.UpdateOne(ctx, filter, update, opts)
	return err
}

// History flatten all buckets of the conversation, oldest first.
// Messages are re-sorted by sent_at since cross-connection arrival
// order inside a bucket is not guaranteed.
func (r *chatMessageRepository) History(ctx context.Context, conversationID string) ([]domain.ChatMessage, error) {
	filter := bson.M{"conversation_id": conversationID}
	opts := options.Find()
	opts.SetSort(bson.M{"date": 1})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var buckets []domain.MessageBucket
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, err
	}

	var messages []domain.ChatMessage
	for _, bucket := range buckets {
		messages = append(messages, bucket.Messages...)
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].SentAt < messages[j].SentAt
	})
	return messages, nil
}
