package domain

// Action websocket request/response action
type Action string

const (
	// AnnounceOnline websocket action announce_online
	AnnounceOnline Action = "announce_online"
	// RequestPresenceSnapshot websocket action request_presence_snapshot
	RequestPresenceSnapshot Action = "request_presence_snapshot"
	// PresenceSnapshot websocket action presence_snapshot
	PresenceSnapshot Action = "presence_snapshot"
	// PresenceDelta websocket action presence_delta
	PresenceDelta Action = "presence_delta"

	// JoinConversation websocket action join_conversation
	JoinConversation Action = "join_conversation"
	// LeaveConversation websocket action leave_conversation
	LeaveConversation Action = "leave_conversation"

	// SendMessage websocket action send_message
	SendMessage Action = "send_message"
	// MessageReceived websocket action message_received
	MessageReceived Action = "message_received"

	// Typing websocket action typing
	Typing Action = "typing"
	// StoppedTyping websocket action stopped_typing
	StoppedTyping Action = "stopped_typing"
	// PeerTyping websocket action peer_typing
	PeerTyping Action = "peer_typing"
	// PeerStoppedTyping websocket action peer_stopped_typing
	PeerStoppedTyping Action = "peer_stopped_typing"

	// ConversationSummaryUpdate websocket action conversation_summary
	ConversationSummaryUpdate Action = "conversation_summary"
)

// WSRequest websocket Request
type WSRequest struct {
	Action         string `json:"action"`
	UserID         string `json:"user_id"`
	ConversationID string `json:"conversation_id"`
	RecipientID    string `json:"recipient_id"`
	Text           string `json:"text"`
}

// WSResponse websocket Response
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// BusEvent envelope carried on the pub/sub channels. SenderConnection lets a
// subscriber skip the connection the event originated from (no self echo).
type BusEvent struct {
	Action           string                 `json:"action"`
	SenderConnection string                 `json:"sender_connection,omitempty"`
	Payload          map[string]interface{} `json:"payload,omitempty"`
}
