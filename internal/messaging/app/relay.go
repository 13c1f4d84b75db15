package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skill_exchange_service/internal/messaging/domain"
	"skill_exchange_service/internal/messaging/repository"
	"skill_exchange_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageRelay accepts a send request, persists it, and fans it out to the
// conversation room. Persistence is the durability boundary: nothing is
// delivered live unless the store accepted the message first. Live delivery
// itself is best effort; a recipient whose connection went stale reads the
// message from history on next conversation load.
type MessageRelay struct {
	store     repository.MessageStore
	bus       repository.PubSub
	summaries repository.SummaryStore
	feed      repository.EventFeed // optional
}

// NewMessageRelay create a MessageRelay. feed may be nil when the kafka
// event feed is not deployed.
func NewMessageRelay(
	store repository.MessageStore,
	bus repository.PubSub,
	summaries repository.SummaryStore,
	feed repository.EventFeed,
) *MessageRelay {
	return &MessageRelay{
		store:     store,
		bus:       bus,
		summaries: summaries,
		feed:      feed,
	}
}

// Send validate, persist and broadcast one message. The sender's own
// connection is excluded from the room broadcast since its client already
// rendered the message optimistically.
func (uc *MessageRelay) Send(ctx context.Context, senderConnID, senderID, recipientID, text string) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, domain.ErrEmptyMessage
	}

	conversationID, err := domain.ConversationID(senderID, recipientID)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	msg := domain.ChatMessage{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		SentAt:         time.Now().UnixMilli(),
	}

	if err := uc.store.Append(ctx, msg); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("persist message: %w", err)
	}

	event := domain.BusEvent{
		Action:           string(domain.MessageReceived),
		SenderConnection: senderConnID,
		Payload: map[string]interface{}{
			"id":              msg.ID,
			"conversation_id": msg.ConversationID,
			"sender_id":       msg.SenderID,
			"text":            msg.Text,
			"sent_at":         msg.SentAt,
		},
	}
	if err := uc.bus.Publish(ctx, repository.RoomChannel(conversationID), event); err != nil {
		// message is durable already; the room simply misses the live push
		logger.Log.Warn("room broadcast failed",
			zap.String("conversation_id", conversationID), zap.Error(err))
	}

	uc.projectSummary(ctx, msg, senderID, recipientID)

	if uc.feed != nil {
		if err := uc.feed.PublishMessageStored(ctx, msg); err != nil {
			logger.Log.Warn("event feed publish failed",
				zap.String("message_id", msg.ID), zap.Error(err))
		}
	}

	return msg, nil
}

// projectSummary refresh both participants' latest-message projection and
// push it on their user channels. Unlike room delivery this is global per
// user, so a closed conversation still updates the contact list preview.
func (uc *MessageRelay) projectSummary(ctx context.Context, msg domain.ChatMessage, senderID, recipientID string) {
	summary := domain.ConversationSummary{
		ConversationID: msg.ConversationID,
		LastSenderID:   msg.SenderID,
		LastText:       msg.Text,
		LastSentAt:     msg.SentAt,
	}

	event := domain.BusEvent{
		Action: string(domain.ConversationSummaryUpdate),
		Payload: map[string]interface{}{
			"conversation_id": summary.ConversationID,
			"last_sender_id":  summary.LastSenderID,
			"last_text":       summary.LastText,
			"last_sent_at":    summary.LastSentAt,
		},
	}

	for _, userID := range []string{senderID, recipientID} {
		if err := uc.summaries.Upsert(ctx, userID, summary); err != nil {
			logger.Log.Warn("summary upsert failed",
				zap.String("user_id", userID), zap.Error(err))
		}
		if err := uc.bus.Publish(ctx, repository.UserChannel(userID), event); err != nil {
			logger.Log.Warn("summary publish failed",
				zap.String("user_id", userID), zap.Error(err))
		}
	}
}
