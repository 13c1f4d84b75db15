package repository

import (
	"context"
	"encoding/json"

	"skill_exchange_service/internal/messaging/domain"

	"github.com/segmentio/kafka-go"
)

// EventFeed downstream feed of persisted messages, consumed by the
// notification and analytics services. Publishing is best effort; the
// message is already durable in the store when it reaches the feed.
type EventFeed interface {
	PublishMessageStored(ctx context.Context, msg domain.ChatMessage) error
}

type kafkaEventFeed struct {
	writer *kafka.Writer
}

// NewKafkaEventFeed create an EventFeed over a kafka writer
func NewKafkaEventFeed(writer *kafka.Writer) EventFeed {
	return &kafkaEventFeed{writer: writer}
}

func (f *kafkaEventFeed) PublishMessageStored(ctx context.Context, msg domain.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return f.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.ConversationID),
		Value: data,
	})
}
