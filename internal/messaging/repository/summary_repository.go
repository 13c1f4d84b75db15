package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"skill_exchange_service/internal/messaging/domain"
	errprocess "skill_exchange_service/pkg/err"

	"github.com/go-redis/redis/v8"
)

// SummaryStore latest-message projection per user, keyed by conversation.
// Best effort: losing an entry only degrades contact-list ordering until
// the next message arrives.
type SummaryStore interface {
	Upsert(ctx context.Context, userID string, summary domain.ConversationSummary) error
	ListForUser(ctx context.Context, userID string) (map[string]domain.ConversationSummary, error)
}

type redisSummaryRepository struct {
	client *redis.Client
}

// NewRedisSummaryStore create a SummaryStore over redis hashes
func NewRedisSummaryStore(client *redis.Client) SummaryStore {
	return &redisSummaryRepository{client: client}
}

func summaryKey(userID string) string {
	return "chat:summary:" + userID
}

func (r *redisSummaryRepository) Upsert(ctx context.Context, userID string, summary domain.ConversationSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return errprocess.Set(fmt.Sprintf("failed to marshal summary: %v", err))
	}
	return r.client.HSet(ctx, summaryKey(userID), summary.ConversationID, data).Err()
}

func (r *redisSummaryRepository) ListForUser(ctx context.Context, userID string) (map[string]domain.ConversationSummary, error) {
	raw, err := r.client.HGetAll(ctx, summaryKey(userID)).Result()
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("failed to load summaries: %v", err))
	}

	out := make(map[string]domain.ConversationSummary, len(raw))
	for conversationID, val := range raw {
		var summary domain.ConversationSummary
		if err := json.Unmarshal([]byte(val), &summary); err != nil {
			continue
		}
		out[conversationID] = summary
	}
	return out, nil
}
