package ws

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/m-orlov/pairlist/internal/presence"
	"github.com/m-orlov/pairlist/internal/relay"
)

// Module provides the websocket handler to the fx graph.
var Module = fx.Provide(newHandler)

type handlerParams struct {
	fx.In

	Engine   *relay.Engine
	Registry *presence.Registry
	Logger   *slog.Logger
}

func newHandler(p handlerParams) *Handler {
	return NewHandler(p.Engine, p.Registry, p.Logger)
}
