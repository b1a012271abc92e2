package di

import (
	"go.uber.org/fx"

	"github.com/m-orlov/pairlist/internal/adapter/push"
	"github.com/m-orlov/pairlist/internal/app"
	"github.com/m-orlov/pairlist/internal/config"
	"github.com/m-orlov/pairlist/internal/logger"
	"github.com/m-orlov/pairlist/internal/pkg/auth"
	"github.com/m-orlov/pairlist/internal/presence"
	"github.com/m-orlov/pairlist/internal/relay"
	"github.com/m-orlov/pairlist/internal/server/http/router"
	"github.com/m-orlov/pairlist/internal/server/ws"
	"github.com/m-orlov/pairlist/internal/storage/postgres"
	"github.com/m-orlov/pairlist/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		presence.Module,
		push.Module,
		fx.Provide(func(d *push.Dispatcher) relay.Notifier { return d }),
		relay.Module,
		usecase.Module,
		ws.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
