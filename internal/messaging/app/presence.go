package app

import (
	"context"
	"sort"
	"sync"

	"skill_exchange_service/internal/messaging/domain"
	"skill_exchange_service/internal/messaging/repository"
	"skill_exchange_service/pkg/logger"

	"go.uber.org/zap"
)

// PresenceTracker maintains the global online-user set and broadcasts
// deltas on the presence channel. Deltas are fire and forget: a client that
// misses one self-heals by requesting a fresh snapshot.
type PresenceTracker struct {
	mu     sync.RWMutex
	online map[string]struct{}

	bus repository.PubSub
}

// NewPresenceTracker create a PresenceTracker
func NewPresenceTracker(bus repository.PubSub) *PresenceTracker {
	return &PresenceTracker{
		online: make(map[string]struct{}),
		bus:    bus,
	}
}

// Snapshot full current online-user set, for an explicit client query
func (p *PresenceTracker) Snapshot() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.online))
	for userID := range p.online {
		out = append(out, userID)
	}
	sort.Strings(out)
	return out
}

// IsOnline check one user's presence
func (p *PresenceTracker) IsOnline(userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.online[userID]
	return ok
}

// OnTransition invoked by the Connection Registry on first-connection and
// last-disconnection transitions. Updates the set and broadcasts the delta
// to every registered connection.
func (p *PresenceTracker) OnTransition(userID string, isOnline bool) {
	p.mu.Lock()
	if isOnline {
		p.online[userID] = struct{}{}
	} else {
		delete(p.online, userID)
	}
	p.mu.Unlock()

	event := domain.BusEvent{
		Action: string(domain.PresenceDelta),
		Payload: map[string]interface{}{
			"user_id":   userID,
			"is_online": isOnline,
		},
	}
	if err := p.bus.Publish(context.Background(), repository.PresenceChannel(), event); err != nil {
		logger.Log.Warn("presence delta publish failed",
			zap.String("user_id", userID), zap.Error(err))
	}
}
