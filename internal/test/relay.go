package test

import (
	"sync"

	"github.com/m-orlov/pairlist/internal/protocol"
)

// ConnStub records envelopes pushed to a live connection.
type ConnStub struct {
	ConnID string
	Full   bool

	mu   sync.Mutex
	sent []protocol.Envelope
}

// ID returns the connection identifier.
func (c *ConnStub) ID() string {
	if c.ConnID == "" {
		return "conn-stub"
	}
	return c.ConnID
}

// Send records the envelope unless the stub simulates a full buffer.
func (c *ConnStub) Send(env protocol.Envelope) bool {
	if c.Full {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, env)
	return true
}

// Sent returns a copy of everything delivered so far.
func (c *ConnStub) Sent() []protocol.Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]protocol.Envelope, len(c.sent))
	copy(out, c.sent)
	return out
}

// Events returns the event names delivered so far, in order.
func (c *ConnStub) Events() []protocol.EventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]protocol.EventType, 0, len(c.sent))
	for _, env := range c.sent {
		out = append(out, env.Event)
	}
	return out
}

// NotificationRecord stores one Notify invocation.
type NotificationRecord struct {
	UserID int64
	Title  string
	Body   string
}

// NotifierStub records push notification requests.
type NotifierStub struct {
	mu      sync.Mutex
	Records []NotificationRecord
}

// Notify records the notification.
func (n *NotifierStub) Notify(userID int64, title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Records = append(n.Records, NotificationRecord{UserID: userID, Title: title, Body: body})
}

// Notified returns a copy of recorded notifications.
func (n *NotifierStub) Notified() []NotificationRecord {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]NotificationRecord, len(n.Records))
	copy(out, n.Records)
	return out
}
