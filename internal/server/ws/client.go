package ws

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/m-orlov/pairlist/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 16
)

// client is one live websocket connection. It satisfies presence.Conn: the
// relay hands it envelopes through Send and the write pump drains them.
type client struct {
	id     string
	conn   *websocket.Conn
	send   chan protocol.Envelope
	done   chan struct{}
	userID atomic.Int64
}

func newClient(id string, conn *websocket.Conn) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan protocol.Envelope, sendBufferSize),
		done: make(chan struct{}),
	}
}

// ID returns the connection identifier.
func (c *client) ID() string {
	return c.id
}

// Send queues an envelope for delivery. It never blocks: when the buffer is
// full the message is dropped and false is returned.
func (c *client) Send(env protocol.Envelope) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- env:
		return true
	default:
		return false
	}
}

// writePump drains the send queue and keeps the connection alive with pings.
func (c *client) writePump(logger *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case env := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(env); err != nil {
				logger.Debug("websocket write failed",
					slog.String("conn_id", c.id), slog.String("error", err.Error()))
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
