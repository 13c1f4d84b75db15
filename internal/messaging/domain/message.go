package domain

import "errors"

// ErrEmptyMessage send rejected because text is empty after trimming
var ErrEmptyMessage = errors.New("empty message")

// ChatMessage one message in a conversation. Immutable once persisted.
type ChatMessage struct {
	ID             string `bson:"id" json:"id"`
	ConversationID string `bson:"conversation_id" json:"conversation_id"`
	SenderID       string `bson:"sender_id" json:"sender_id"`
	Text           string `bson:"text" json:"text"`
	SentAt         int64  `bson:"sent_at" json:"sent_at"` // unix milliseconds
}

// MessageBucket one day of messages for one conversation
type MessageBucket struct {
	ConversationID string        `bson:"conversation_id" json:"conversation_id"`
	Date           string        `bson:"date" json:"date"` // "2006-01-02"
	Messages       []ChatMessage `bson:"messages" json:"messages"`
}

// ConversationSummary latest-message projection for contact list ordering.
// Derived, best effort. The message store is the source of truth.
type ConversationSummary struct {
	ConversationID string `json:"conversation_id"`
	LastSenderID   string `json:"last_sender_id"`
	LastText       string `json:"last_text"`
	LastSentAt     int64  `json:"last_sent_at"`
}

// Contact one entry of the contact directory plus live/derived state
type Contact struct {
	UserID        string `json:"user_id"`
	DisplayName   string `json:"display_name"`
	Email         string `json:"email"`
	IsOnline      bool   `json:"is_online"`
	LastMessage   string `json:"last_message,omitempty"`
	LastMessageAt int64  `json:"last_message_at,omitempty"`
}
