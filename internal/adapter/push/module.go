package push

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/m-orlov/pairlist/internal/config"
	"github.com/m-orlov/pairlist/internal/domain/repository"
)

// Module exposes push delivery components to the fx graph.
var Module = fx.Options(
	fx.Provide(newSender),
	fx.Provide(newDispatcher),
)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) Sender {
	return NewHTTPSender(p.Config.PushTimeout, p.Logger)
}

type dispatcherParams struct {
	fx.In

	Users  repository.UserRepository
	Sender Sender
	Config *config.Config
	Logger *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(p.Users, p.Sender, p.Config.PushTimeout, p.Logger)
}
