package app

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skill_exchange_service/internal/messaging/domain"
	"skill_exchange_service/internal/messaging/repository"
	"skill_exchange_service/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.SetNewNop()
	os.Exit(m.Run())
}

func TestRelayRejectsEmptyMessage(t *testing.T) {
	store := new(MockMessageStore)
	bus := new(MockPubSub)
	summaries := new(MockSummaryStore)
	relay := NewMessageRelay(store, bus, summaries, nil)

	_, err := relay.Send(context.Background(), "conn-alice", "alice", "bob", "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)

	store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestRelayRejectsSelfConversation(t *testing.T) {
	store := new(MockMessageStore)
	bus := new(MockPubSub)
	summaries := new(MockSummaryStore)
	relay := NewMessageRelay(store, bus, summaries, nil)

	_, err := relay.Send(context.Background(), "conn-alice", "alice", "alice", "hi")
	assert.ErrorIs(t, err, domain.ErrInvalidParticipants)
	store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestRelayPersistsBeforeDelivery(t *testing.T) {
	store := new(MockMessageStore)
	bus := new(MockPubSub)
	summaries := new(MockSummaryStore)
	relay := NewMessageRelay(store, bus, summaries, nil)

	store.On("Append", mock.Anything, mock.Anything).Return(errors.New("mongo down"))

	_, err := relay.Send(context.Background(), "conn-alice", "alice", "bob", "hi")
	require.Error(t, err)

	// a message the store rejected must never reach the room
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	summaries.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestRelayBroadcastsAndProjectsSummaries(t *testing.T) {
	store := new(MockMessageStore)
	summaries := new(MockSummaryStore)
	feed := new(MockEventFeed)
	bus := newFakeBus()

	roomEvents := &busRecorder{}
	aliceEvents := &busRecorder{}
	bobEvents := &busRecorder{}
	require.NoError(t, bus.Subscribe(context.Background(), repository.RoomChannel("alice_bob"), roomEvents.record))
	require.NoError(t, bus.Subscribe(context.Background(), repository.UserChannel("alice"), aliceEvents.record))
	require.NoError(t, bus.Subscribe(context.Background(), repository.UserChannel("bob"), bobEvents.record))

	store.On("Append", mock.Anything, mock.Anything).Return(nil)
	summaries.On("Upsert", mock.Anything, "alice", mock.Anything).Return(nil)
	summaries.On("Upsert", mock.Anything, "bob", mock.Anything).Return(nil)
	feed.On("PublishMessageStored", mock.Anything, mock.Anything).Return(nil)

	relay := NewMessageRelay(store, bus, summaries, feed)

	msg, err := relay.Send(context.Background(), "conn-alice", "alice", "bob", "hi")
	require.NoError(t, err)
	assert.Equal(t, "alice_bob", msg.ConversationID)
	assert.NotEmpty(t, msg.ID)
	assert.NotZero(t, msg.SentAt)

	received := roomEvents.byAction(domain.MessageReceived)
	require.Len(t, received, 1)
	assert.Equal(t, "conn-alice", received[0].SenderConnection)
	assert.Equal(t, "hi", received[0].Payload["text"])
	assert.Equal(t, "alice", received[0].Payload["sender_id"])

	// both participants get the contact-list projection, sender included
	assert.Len(t, aliceEvents.byAction(domain.ConversationSummaryUpdate), 1)
	assert.Len(t, bobEvents.byAction(domain.ConversationSummaryUpdate), 1)

	store.AssertExpectations(t)
	summaries.AssertExpectations(t)
	feed.AssertExpectations(t)
}

func TestRelaySurvivesSummaryAndFeedFailures(t *testing.T) {
	store := new(MockMessageStore)
	summaries := new(MockSummaryStore)
	feed := new(MockEventFeed)
	bus := newFakeBus()

	store.On("Append", mock.Anything, mock.Anything).Return(nil)
	summaries.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
	feed.On("PublishMessageStored", mock.Anything, mock.Anything).Return(errors.New("kafka down"))

	relay := NewMessageRelay(store, bus, summaries, feed)

	// projection and feed are best effort; the send itself still succeeds
	msg, err := relay.Send(context.Background(), "conn-alice", "alice", "bob", "hi")
	require.NoError(t, err)
	assert.Equal(t, "alice_bob", msg.ConversationID)
}
