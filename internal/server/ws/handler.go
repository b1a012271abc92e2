// Package ws exposes the live-connection endpoint: it upgrades HTTP requests
// to websockets, binds connections to users via register_socket and feeds
// every further inbound event to the relay engine in receipt order.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/m-orlov/pairlist/internal/presence"
	"github.com/m-orlov/pairlist/internal/protocol"
	"github.com/m-orlov/pairlist/internal/relay"
)

// Handler upgrades and serves live connections.
type Handler struct {
	upgrader websocket.Upgrader
	engine   *relay.Engine
	registry *presence.Registry
	logger   *slog.Logger
}

// NewHandler constructs the websocket handler.
func NewHandler(engine *relay.Engine, registry *presence.Registry, logger *slog.Logger) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from arbitrary origins, auth
			// happens at registration time.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		engine:   engine,
		registry: registry,
		logger:   logger,
	}
}

// Serve handles GET /ws.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	cl := newClient(uuid.NewString(), conn)
	h.logger.Info("connection opened", slog.String("conn_id", cl.ID()))

	go cl.writePump(h.logger)
	h.readPump(c, cl)
}

// readPump processes inbound events sequentially, which is what guarantees
// per-connection receipt order.
func (h *Handler) readPump(c *gin.Context, cl *client) {
	defer func() {
		close(cl.done)
		h.registry.Unregister(cl)
		cl.conn.Close()
		h.logger.Info("connection closed", slog.String("conn_id", cl.ID()))
	}()

	cl.conn.SetReadLimit(maxMessageSize)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed",
					slog.String("conn_id", cl.ID()), slog.String("error", err.Error()))
			}
			return
		}

		var env protocol.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			h.logger.Warn("dropped unparseable frame", slog.String("conn_id", cl.ID()))
			continue
		}
		if !protocol.Inbound(env.Event) {
			h.logger.Warn("dropped non-inbound event",
				slog.String("conn_id", cl.ID()), slog.String("event", string(env.Event)))
			continue
		}

		if env.Event == protocol.EventRegisterSocket {
			payload, err := protocol.DecodeRegister(env)
			if err != nil || payload.UserID <= 0 {
				h.logger.Warn("dropped malformed registration", slog.String("conn_id", cl.ID()))
				continue
			}
			cl.userID.Store(payload.UserID)
			h.registry.Register(payload.UserID, cl)
			h.logger.Info("connection registered",
				slog.String("conn_id", cl.ID()), slog.Int64("user_id", payload.UserID))
			continue
		}

		userID := cl.userID.Load()
		if userID == 0 {
			h.logger.Warn("dropped event from unregistered connection",
				slog.String("conn_id", cl.ID()), slog.String("event", string(env.Event)))
			continue
		}

		h.engine.HandleEvent(c.Request.Context(), cl, userID, env)
	}
}
