package app

import "sync"

// RoomManager per-connection conversation room membership. A connection may
// be joined to at most one room at a time: the client drives a single active
// chat window, and joining a new conversation implies leaving the previous
// one. Membership is not persisted across disconnects; the client rejoins
// after reconnecting.
type RoomManager struct {
	mu     sync.Mutex
	active map[string]string // connection id -> conversation id
}

// NewRoomManager create a RoomManager
func NewRoomManager() *RoomManager {
	return &RoomManager{
		active: make(map[string]string),
	}
}

// Join set the connection's active room, returning the room it left.
// Idempotent: re-joining the current room changes nothing.
func (m *RoomManager) Join(connID, conversationID string) (previous string, changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	previous = m.active[connID]
	if previous == conversationID {
		return "", false
	}
	m.active[connID] = conversationID
	return previous, true
}

// Leave drop the membership if conversationID is the connection's active
// room. Leaving a room the connection isn't in is a no-op, not an error.
func (m *RoomManager) Leave(connID, conversationID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active[connID] != conversationID {
		return false
	}
	delete(m.active, connID)
	return true
}

// LeaveAll drop whatever room the connection is in, for disconnect cleanup
func (m *RoomManager) LeaveAll(connID string) (previous string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	previous = m.active[connID]
	delete(m.active, connID)
	return previous
}

// ActiveRoom the connection's current room, if any
func (m *RoomManager) ActiveRoom(connID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conversationID, ok := m.active[connID]
	return conversationID, ok
}
