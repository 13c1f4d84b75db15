package app

import (
	"errors"
	"sync"
)

var (
	// ErrUnauthenticatedUser register rejected, the caller must authenticate first
	ErrUnauthenticatedUser = errors.New("unauthenticated user")
	// ErrConnectionOwned the connection is already registered to another identity
	ErrConnectionOwned = errors.New("connection already registered to another user")
)

// TransitionFunc invoked when a user gains their first or loses their last
// live connection
type TransitionFunc func(userID string, isOnline bool)

// ConnectionRegistry source of truth for which transport connections are
// alive and which user owns each. A user is online iff it owns at least one
// live connection.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	conns map[string]*Connection
	users map[string]map[string]*Connection

	onTransition TransitionFunc
}

// NewConnectionRegistry create a ConnectionRegistry
func NewConnectionRegistry(onTransition TransitionFunc) *ConnectionRegistry {
	return &ConnectionRegistry{
		conns:        make(map[string]*Connection),
		users:        make(map[string]map[string]*Connection),
		onTransition: onTransition,
	}
}

// Register bind a connection to its verified user identity. Idempotent per
// connection id. Emits the online transition when this is the user's first
// live connection.
func (r *ConnectionRegistry) Register(conn *Connection, userID string) error {
	if userID == "" {
		return ErrUnauthenticatedUser
	}

	r.mu.Lock()
	if existing, ok := r.conns[conn.ID]; ok {
		r.mu.Unlock()
		if existing.UserID() == userID {
			return nil
		}
		return ErrConnectionOwned
	}

	conn.setUserID(userID)
	r.conns[conn.ID] = conn
	if r.users[userID] == nil {
		r.users[userID] = make(map[string]*Connection)
	}
	r.users[userID][conn.ID] = conn
	first := len(r.users[userID]) == 1
	r.mu.Unlock()

	if first && r.onTransition != nil {
		r.onTransition(userID, true)
	}
	return nil
}

// Unregister drop a connection. Emits the offline transition when it was
// the user's last live connection. Unknown ids are a no-op (a disconnect may
// race a never-registered handshake).
func (r *ConnectionRegistry) Unregister(connID string) {
	r.mu.Lock()
	conn, ok := r.conns[connID]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.conns, connID)

	userID := conn.UserID()
	last := false
	if userID != "" {
		delete(r.users[userID], connID)
		if len(r.users[userID]) == 0 {
			delete(r.users, userID)
			last = true
		}
	}
	r.mu.Unlock()

	if last && r.onTransition != nil {
		r.onTransition(userID, false)
	}
}

// ConnectionsFor current live connections of a user, for fan-out
func (r *ConnectionRegistry) ConnectionsFor(userID string) []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conns := make([]*Connection, 0, len(r.users[userID]))
	for _, c := range r.users[userID] {
		conns = append(conns, c)
	}
	return conns
}

// IsRegistered check a connection id is currently registered
func (r *ConnectionRegistry) IsRegistered(connID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[connID]
	return ok
}
