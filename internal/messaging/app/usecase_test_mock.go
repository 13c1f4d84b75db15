package app

import (
	"context"
	"sync"

	"skill_exchange_service/internal/messaging/domain"

	"github.com/stretchr/testify/mock"
)

// MockMessageStore Mock MessageStore
type MockMessageStore struct {
	mock.Mock
}

// Append mock persist message
func (m *MockMessageStore) Append(ctx context.Context, msg domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// History mock conversation history
func (m *MockMessageStore) History(ctx context.Context, conversationID string) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ChatMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockSummaryStore Mock SummaryStore
type MockSummaryStore struct {
	mock.Mock
}

// Upsert mock summary upsert
func (m *MockSummaryStore) Upsert(ctx context.Context, userID string, summary domain.ConversationSummary) error {
	args := m.Called(ctx, userID, summary)
	return args.Error(0)
}

// ListForUser mock summary listing
func (m *MockSummaryStore) ListForUser(ctx context.Context, userID string) (map[string]domain.ConversationSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).(map[string]domain.ConversationSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockEventFeed Mock EventFeed
type MockEventFeed struct {
	mock.Mock
}

// PublishMessageStored mock feed publish
func (m *MockEventFeed) PublishMessageStored(ctx context.Context, msg domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockPubSub Mock PubSub
type MockPubSub struct {
	mock.Mock
}

// Publish mock publisher
func (m *MockPubSub) Publish(ctx context.Context, channel string, event domain.BusEvent) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

// Subscribe mock subscriber
func (m *MockPubSub) Subscribe(ctx context.Context, channel string, handler func(event domain.BusEvent)) error {
	args := m.Called(ctx, channel, handler)
	return args.Error(0)
}

// fakeBus in-memory PubSub with synchronous dispatch, for scenario tests
type fakeBus struct {
	mu   sync.Mutex
	subs map[string][]fakeSub
}

type fakeSub struct {
	ctx     context.Context
	handler func(event domain.BusEvent)
}

func newFakeBus() *fakeBus {
	return &fakeBus{subs: make(map[string][]fakeSub)}
}

func (b *fakeBus) Publish(ctx context.Context, channel string, event domain.BusEvent) error {
	b.mu.Lock()
	subs := append([]fakeSub(nil), b.subs[channel]...)
	b.mu.Unlock()
	for _, s := range subs {
		if s.ctx.Err() == nil {
			s.handler(event)
		}
	}
	return nil
}

func (b *fakeBus) Subscribe(ctx context.Context, channel string, handler func(event domain.BusEvent)) error {
	b.mu.Lock()
	b.subs[channel] = append(b.subs[channel], fakeSub{ctx: ctx, handler: handler})
	b.mu.Unlock()
	return nil
}

// fakeWriter records everything written to one connection
type fakeWriter struct {
	mu     sync.Mutex
	events []domain.WSResponse
}

func (w *fakeWriter) WriteEvent(resp domain.WSResponse) error {
	w.mu.Lock()
	w.events = append(w.events, resp)
	w.mu.Unlock()
	return nil
}

func (w *fakeWriter) byAction(action string) []domain.WSResponse {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []domain.WSResponse
	for _, e := range w.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}
