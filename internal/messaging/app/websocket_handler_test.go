package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skill_exchange_service/internal/messaging/domain"
)

// handlerHarness the full messaging core wired over the in-process bus,
// with persistence mocked out
type handlerHarness struct {
	handler *MessagingWebsocketHandler
	bus     *fakeBus
	store   *MockMessageStore
}

func newHandlerHarness() *handlerHarness {
	bus := newFakeBus()
	store := new(MockMessageStore)
	store.On("Append", mock.Anything, mock.Anything).Return(nil)
	summaries := new(MockSummaryStore)
	summaries.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	presence := NewPresenceTracker(bus)
	registry := NewConnectionRegistry(presence.OnTransition)
	rooms := NewRoomManager()
	typing := NewTypingCoordinator(bus, time.Minute)
	relay := NewMessageRelay(store, bus, summaries, nil)

	return &handlerHarness{
		handler: NewMessagingWebsocketHandler(registry, presence, rooms, typing, relay, bus),
		bus:     bus,
		store:   store,
	}
}

type harnessClient struct {
	sess   *clientSession
	writer *fakeWriter
	userID string
	cancel context.CancelFunc
}

func (h *handlerHarness) connect(userID string) *harnessClient {
	writer := &fakeWriter{}
	ctx, cancel := context.WithCancel(context.Background())
	return &harnessClient{
		sess:   &clientSession{conn: NewConnection(writer), ctx: ctx},
		writer: writer,
		userID: userID,
		cancel: cancel,
	}
}

func (h *handlerHarness) send(c *harnessClient, req domain.WSRequest) {
	b, err := json.Marshal(req)
	if err != nil {
		panic(err)
	}
	h.handler.textMessageAction(context.Background(), c.sess, c.userID, b)
}

// disconnect mirrors what HandleConnection's deferred cleanup does
func (h *handlerHarness) disconnect(c *harnessClient) {
	h.handler.teardown(c.sess)
	c.cancel()
}

func (h *handlerHarness) announce(t *testing.T, c *harnessClient) {
	t.Helper()
	h.send(c, domain.WSRequest{Action: string(domain.AnnounceOnline), UserID: c.userID})
	acks := c.writer.byAction(string(domain.AnnounceOnline))
	require.NotEmpty(t, acks)
	require.True(t, acks[len(acks)-1].Success)
}

func TestWebsocketTwoUserConversation(t *testing.T) {
	h := newHandlerHarness()

	alice := h.connect("alice")
	bob := h.connect("bob")

	h.announce(t, alice)
	h.announce(t, bob)

	// alice was already listening on the presence channel when bob came up
	deltas := alice.writer.byAction(string(domain.PresenceDelta))
	require.Len(t, deltas, 1)
	assert.Equal(t, "bob", deltas[0].Payload["user_id"])
	assert.Equal(t, true, deltas[0].Payload["is_online"])

	h.send(alice, domain.WSRequest{Action: string(domain.RequestPresenceSnapshot)})
	snapshots := alice.writer.byAction(string(domain.PresenceSnapshot))
	require.Len(t, snapshots, 1)
	assert.Equal(t, []string{"alice", "bob"}, snapshots[0].Payload["online_user_ids"])

	h.send(alice, domain.WSRequest{Action: string(domain.JoinConversation), ConversationID: "alice_bob"})
	h.send(bob, domain.WSRequest{Action: string(domain.JoinConversation), ConversationID: "alice_bob"})

	h.send(alice, domain.WSRequest{Action: string(domain.SendMessage), RecipientID: "bob", Text: "hi"})

	acks := alice.writer.byAction(string(domain.SendMessage))
	require.Len(t, acks, 1)
	require.True(t, acks[0].Success)
	assert.Equal(t, "alice_bob", acks[0].Payload["conversation_id"])

	// bob gets the live push; alice only gets her ack, never an echo
	received := bob.writer.byAction(string(domain.MessageReceived))
	require.Len(t, received, 1)
	assert.Equal(t, "hi", received[0].Payload["text"])
	assert.Equal(t, "alice", received[0].Payload["sender_id"])
	assert.Empty(t, alice.writer.byAction(string(domain.MessageReceived)))

	// both contact lists refresh, the sender's included
	assert.Len(t, alice.writer.byAction(string(domain.ConversationSummaryUpdate)), 1)
	assert.Len(t, bob.writer.byAction(string(domain.ConversationSummaryUpdate)), 1)

	h.send(bob, domain.WSRequest{Action: string(domain.Typing), ConversationID: "alice_bob"})
	typing := alice.writer.byAction(string(domain.PeerTyping))
	require.Len(t, typing, 1)
	assert.Equal(t, "bob", typing[0].Payload["user_id"])
	assert.Empty(t, bob.writer.byAction(string(domain.PeerTyping)))

	// bob drops while still typing: alice sees the typing clear and the
	// offline delta
	h.disconnect(bob)
	stopped := alice.writer.byAction(string(domain.PeerStoppedTyping))
	require.Len(t, stopped, 1)
	assert.Equal(t, "bob", stopped[0].Payload["user_id"])

	deltas = alice.writer.byAction(string(domain.PresenceDelta))
	require.Len(t, deltas, 2)
	assert.Equal(t, "bob", deltas[1].Payload["user_id"])
	assert.Equal(t, false, deltas[1].Payload["is_online"])
}

func TestWebsocketAnnounceIdentityMismatch(t *testing.T) {
	h := newHandlerHarness()
	alice := h.connect("alice")

	h.send(alice, domain.WSRequest{Action: string(domain.AnnounceOnline), UserID: "mallory"})

	acks := alice.writer.byAction(string(domain.AnnounceOnline))
	require.Len(t, acks, 1)
	assert.False(t, acks[0].Success)
	assert.Equal(t, "identity mismatch", acks[0].Error)
}

func TestWebsocketRequiresAnnounceFirst(t *testing.T) {
	h := newHandlerHarness()
	alice := h.connect("alice")

	h.send(alice, domain.WSRequest{Action: string(domain.SendMessage), RecipientID: "bob", Text: "hi"})
	acks := alice.writer.byAction(string(domain.SendMessage))
	require.Len(t, acks, 1)
	assert.False(t, acks[0].Success)
	assert.Equal(t, "not registered", acks[0].Error)

	h.send(alice, domain.WSRequest{Action: string(domain.JoinConversation), ConversationID: "alice_bob"})
	joins := alice.writer.byAction(string(domain.JoinConversation))
	require.Len(t, joins, 1)
	assert.False(t, joins[0].Success)
}

func TestWebsocketJoinRejectsNonParticipant(t *testing.T) {
	h := newHandlerHarness()
	alice := h.connect("alice")
	h.announce(t, alice)

	h.send(alice, domain.WSRequest{Action: string(domain.JoinConversation), ConversationID: "bob_carol"})

	joins := alice.writer.byAction(string(domain.JoinConversation))
	require.Len(t, joins, 1)
	assert.False(t, joins[0].Success)
	assert.Equal(t, "not a participant", joins[0].Error)
}

func TestWebsocketTypingRequiresActiveRoom(t *testing.T) {
	h := newHandlerHarness()
	alice := h.connect("alice")
	h.announce(t, alice)

	h.send(alice, domain.WSRequest{Action: string(domain.Typing), ConversationID: "alice_bob"})
	events := alice.writer.byAction(string(domain.Typing))
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
	assert.Equal(t, "not in conversation", events[0].Error)

	// a stray stop is accepted regardless
	h.send(alice, domain.WSRequest{Action: string(domain.StoppedTyping), ConversationID: "alice_bob"})
	stops := alice.writer.byAction(string(domain.StoppedTyping))
	require.Len(t, stops, 1)
	assert.True(t, stops[0].Success)
}

func TestWebsocketSwitchingRoomsStopsListeningToOld(t *testing.T) {
	h := newHandlerHarness()

	alice := h.connect("alice")
	bob := h.connect("bob")
	carol := h.connect("carol")
	h.announce(t, alice)
	h.announce(t, bob)
	h.announce(t, carol)

	h.send(alice, domain.WSRequest{Action: string(domain.JoinConversation), ConversationID: "alice_bob"})
	h.send(bob, domain.WSRequest{Action: string(domain.JoinConversation), ConversationID: "alice_bob"})

	// alice moves to her conversation with carol
	h.send(alice, domain.WSRequest{Action: string(domain.JoinConversation), ConversationID: "alice_carol"})

	h.send(bob, domain.WSRequest{Action: string(domain.SendMessage), RecipientID: "alice", Text: "still there?"})

	// bob's message lands in alice's history and summary, not her live feed
	assert.Empty(t, alice.writer.byAction(string(domain.MessageReceived)))
	assert.Len(t, alice.writer.byAction(string(domain.ConversationSummaryUpdate)), 1)
}

func TestWebsocketMalformedRequest(t *testing.T) {
	h := newHandlerHarness()
	alice := h.connect("alice")

	h.handler.textMessageAction(context.Background(), alice.sess, "alice", []byte("{not json"))

	errs := alice.writer.byAction("error")
	require.Len(t, errs, 1)
	assert.Equal(t, "malformed request", errs[0].Payload["error"])
}
