package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"skill_exchange_service/internal/messaging/domain"
	"skill_exchange_service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Channel naming. Room channels carry conversation-scoped events, user
// channels carry per-user events, the presence channel carries the global
// online/offline deltas every connection listens to.
const presenceChannel = "chat:presence"

// RoomChannel channel of one conversation room
func RoomChannel(conversationID string) string {
	return "chat:room:" + conversationID
}

// UserChannel channel of one user identity (all tabs/devices)
func UserChannel(userID string) string {
	return "chat:user:" + userID
}

// PresenceChannel global presence delta channel
func PresenceChannel() string {
	return presenceChannel
}

// PubSub fan-out bus between event producers and live connections
type PubSub interface {
	Publish(ctx context.Context, channel string, event domain.BusEvent) error
	// Subscribe delivers channel events to handler until ctx is cancelled
	Subscribe(ctx context.Context, channel string, handler func(event domain.BusEvent)) error
}

// RedisPubSub definition redis pub/sub bus
type RedisPubSub struct {
	client *redis.Client
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) *RedisPubSub {
	return &RedisPubSub{
		client: client,
	}
}

// Publish serialize the event and publish it to channel
func (r *RedisPubSub) Publish(ctx context.Context, channel string, event domain.BusEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, channel, data).Err()
}

// Subscribe subscribe channel, calling handler per event until ctx ends
func (r *RedisPubSub) Subscribe(ctx context.Context, channel string, handler func(event domain.BusEvent)) error {
	sub := r.client.Subscribe(ctx, channel)
	go func() {
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}

				var event domain.BusEvent
				if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
					logger.Log.Error("pubsub payload unmarshal failed",
						zap.String("channel", channel), zap.Error(err))
					continue
				}
				handler(event)
			case <-ctx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", channel))
				sub.Close()
				return
			}
		}
	}()
	return nil
}
