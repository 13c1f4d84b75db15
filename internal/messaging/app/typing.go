package app

import (
	"context"
	"sync"
	"time"

	"skill_exchange_service/internal/messaging/domain"
	"skill_exchange_service/internal/messaging/repository"
	"skill_exchange_service/pkg/logger"

	"go.uber.org/zap"
)

// DefaultTypingTTL how long a silent typist stays "typing" before the
// server clears the state itself
const DefaultTypingTTL = 3 * time.Second

type typingKey struct {
	conversationID string
	userID         string
}

// typingEntry one typing episode: its expiry timer and the connection the
// episode belongs to. The entry pointer doubles as the episode identity so
// a timer fire can tell whether it is still the current one.
type typingEntry struct {
	timer  *time.Timer
	connID string
}

// TypingCoordinator ephemeral "user X is typing in conversation Y" state.
// At most one entry exists per (conversation, user). Repeated typing events
// re-broadcast to room peers (cheap, low rate) but only reset the local
// expiry timer, so "stopped" is always emitted exactly once per episode,
// whether the stop was explicit or the timer ran out.
type TypingCoordinator struct {
	mu      sync.Mutex
	entries map[typingKey]*typingEntry

	ttl time.Duration
	bus repository.PubSub
}

// NewTypingCoordinator create a TypingCoordinator. ttl <= 0 falls back to
// DefaultTypingTTL.
func NewTypingCoordinator(bus repository.PubSub, ttl time.Duration) *TypingCoordinator {
	if ttl <= 0 {
		ttl = DefaultTypingTTL
	}
	return &TypingCoordinator{
		entries: make(map[typingKey]*typingEntry),
		ttl:     ttl,
		bus:     bus,
	}
}

// NotifyTyping enter or refresh the Typing state and tell room peers.
// A refresh replaces the entry; a concurrently firing old timer sees it is
// no longer current in expire and does nothing.
func (t *TypingCoordinator) NotifyTyping(senderConnID, conversationID, userID string) {
	key := typingKey{conversationID: conversationID, userID: userID}
	entry := &typingEntry{connID: senderConnID}

	t.mu.Lock()
	if prev, ok := t.entries[key]; ok {
		prev.timer.Stop()
	}
	entry.timer = time.AfterFunc(t.ttl, func() {
		t.expire(key, entry)
	})
	t.entries[key] = entry
	t.mu.Unlock()

	t.broadcast(string(domain.PeerTyping), senderConnID, conversationID, userID)
}

// NotifyStopped leave the Typing state explicitly. Idempotent: a stray
// duplicate stop is a no-op and does not re-broadcast.
func (t *TypingCoordinator) NotifyStopped(senderConnID, conversationID, userID string) {
	key := typingKey{conversationID: conversationID, userID: userID}

	t.mu.Lock()
	entry, ok := t.entries[key]
	if ok {
		entry.timer.Stop()
		delete(t.entries, key)
	}
	t.mu.Unlock()

	if ok {
		t.broadcast(string(domain.PeerStoppedTyping), senderConnID, conversationID, userID)
	}
}

// expire timer path of the Typing -> Idle transition. Acts only when entry
// is still the current episode: the entry may be gone (explicit stop won the
// race) or already replaced (a refresh beat a firing timer); both are no-ops.
func (t *TypingCoordinator) expire(key typingKey, entry *typingEntry) {
	t.mu.Lock()
	current := t.entries[key] == entry
	if current {
		delete(t.entries, key)
	}
	t.mu.Unlock()

	if current {
		t.broadcast(string(domain.PeerStoppedTyping), entry.connID, key.conversationID, key.userID)
	}
}

func (t *TypingCoordinator) broadcast(action, senderConnID, conversationID, userID string) {
	event := domain.BusEvent{
		Action:           action,
		SenderConnection: senderConnID,
		Payload: map[string]interface{}{
			"conversation_id": conversationID,
			"user_id":         userID,
		},
	}
	if err := t.bus.Publish(context.Background(), repository.RoomChannel(conversationID), event); err != nil {
		logger.Log.Warn("typing broadcast failed",
			zap.String("conversation_id", conversationID), zap.Error(err))
	}
}
