package app

import (
	"context"
	"sync"

	"skill_exchange_service/internal/messaging/domain"

	"github.com/google/uuid"
)

// EventWriter writes one outbound event to a live transport session
type EventWriter interface {
	WriteEvent(resp domain.WSResponse) error
}

// Connection one live transport session. Created on websocket handshake,
// destroyed on disconnect. The user identity stays unset until the client
// announces itself and the registry accepts it.
type Connection struct {
	ID string

	mu         sync.Mutex
	userID     string
	writer     EventWriter
	roomCancel context.CancelFunc
}

// NewConnection create a Connection around the transport writer
func NewConnection(writer EventWriter) *Connection {
	return &Connection{
		ID:     uuid.New().String(),
		writer: writer,
	}
}

// UserID owning user identity, empty before registration
func (c *Connection) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

func (c *Connection) setUserID(userID string) {
	c.mu.Lock()
	c.userID = userID
	c.mu.Unlock()
}

// Send write a response to this connection's transport
func (c *Connection) Send(resp domain.WSResponse) error {
	return c.writer.WriteEvent(resp)
}

// Deliver forward a bus event unless this connection originated it.
// Write failures are swallowed: a stale connection misses the live event
// and catches up from persisted history on next load.
func (c *Connection) Deliver(event domain.BusEvent) {
	if event.SenderConnection == c.ID {
		return
	}
	_ = c.Send(domain.WSResponse{
		Action:  event.Action,
		Success: true,
		Payload: event.Payload,
	})
}

// SetRoomCancel store the cancel of the active room subscription,
// cancelling the previous one first
func (c *Connection) SetRoomCancel(cancel context.CancelFunc) {
	c.mu.Lock()
	prev := c.roomCancel
	c.roomCancel = cancel
	c.mu.Unlock()
	if prev != nil {
		prev()
	}
}

// CancelRoom stop the active room subscription, if any
func (c *Connection) CancelRoom() {
	c.mu.Lock()
	prev := c.roomCancel
	c.roomCancel = nil
	c.mu.Unlock()
	if prev != nil {
		prev()
	}
}
