package domain

import (
	"errors"
	"strings"
)

// ErrInvalidParticipants conversation id rejected (empty id or self conversation)
var ErrInvalidParticipants = errors.New("invalid participants")

// ConversationID builds the canonical id for a two-party conversation:
// both member ids sorted lexicographically and joined with "_", so both
// participants converge on the same room no matter who initiates.
func ConversationID(userA, userB string) (string, error) {
	if userA == "" || userB == "" || userA == userB {
		return "", ErrInvalidParticipants
	}
	if userA > userB {
		userA, userB = userB, userA
	}
	return userA + "_" + userB, nil
}

// IsParticipant check userID is one of the two members of conversationID.
// The candidate peer is derived by stripping the user's half and the whole
// id is recomputed from the pair, so a non-canonical id (wrong order, self
// conversation, dangling separator) never passes.
func IsParticipant(conversationID, userID string) bool {
	if userID == "" {
		return false
	}
	if peer, ok := strings.CutPrefix(conversationID, userID+"_"); ok {
		if id, err := ConversationID(userID, peer); err == nil && id == conversationID {
			return true
		}
	}
	if peer, ok := strings.CutSuffix(conversationID, "_"+userID); ok {
		if id, err := ConversationID(peer, userID); err == nil && id == conversationID {
			return true
		}
	}
	return false
}
