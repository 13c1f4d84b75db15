package app

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoomManagerSingleActiveRoom(t *testing.T) {
	rooms := NewRoomManager()
	connID := uuid.New().String()

	previous, changed := rooms.Join(connID, "alice_bob")
	assert.True(t, changed)
	assert.Empty(t, previous)

	// switching conversations implies leaving the previous one
	previous, changed = rooms.Join(connID, "alice_carol")
	assert.True(t, changed)
	assert.Equal(t, "alice_bob", previous)

	active, ok := rooms.ActiveRoom(connID)
	assert.True(t, ok)
	assert.Equal(t, "alice_carol", active)
}

func TestRoomManagerJoinIdempotent(t *testing.T) {
	rooms := NewRoomManager()
	connID := uuid.New().String()

	_, changed := rooms.Join(connID, "alice_bob")
	assert.True(t, changed)
	_, changed = rooms.Join(connID, "alice_bob")
	assert.False(t, changed)
}

func TestRoomManagerLeaveIdempotent(t *testing.T) {
	rooms := NewRoomManager()
	connID := uuid.New().String()

	rooms.Join(connID, "alice_bob")

	assert.False(t, rooms.Leave(connID, "alice_carol"), "leaving a room the connection isn't in is a no-op")
	assert.True(t, rooms.Leave(connID, "alice_bob"))
	assert.False(t, rooms.Leave(connID, "alice_bob"))

	_, ok := rooms.ActiveRoom(connID)
	assert.False(t, ok)
}

func TestRoomManagerLeaveAll(t *testing.T) {
	rooms := NewRoomManager()
	connID := uuid.New().String()

	rooms.Join(connID, "alice_bob")
	assert.Equal(t, "alice_bob", rooms.LeaveAll(connID))
	assert.Empty(t, rooms.LeaveAll(connID))
}
