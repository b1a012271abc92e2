// Package presence tracks which live connection currently belongs to which
// user. The mapping is process-local and rebuilt from scratch on restart;
// clients re-register on every (re)connect.
package presence

import (
	"sync"

	"github.com/m-orlov/pairlist/internal/protocol"
)

// Conn is a live connection handle the registry hands out. Send must not
// block; implementations drop the message and return false when the
// connection cannot take it.
type Conn interface {
	ID() string
	Send(env protocol.Envelope) bool
}

// Registry maps user identifiers to their connected handle.
type Registry struct {
	mu    sync.RWMutex
	conns map[int64]Conn
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[int64]Conn)}
}

// Register binds the connection to the user, replacing any previous handle.
// Last register wins: a newer device displaces the older one.
func (r *Registry) Register(userID int64, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[userID] = conn
}

// Lookup returns the user's live connection, if any.
func (r *Registry) Lookup(userID int64) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[userID]
	return conn, ok
}

// Unregister removes the entry whose handle matches conn. A connection that
// was already displaced by a newer register stays out of the map, so a late
// disconnect of the old device does not evict the new one.
func (r *Registry) Unregister(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, c := range r.conns {
		if c.ID() == conn.ID() {
			delete(r.conns, userID)
			return
		}
	}
}

// Len reports how many users are currently connected.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
