package relay

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/m-orlov/pairlist/internal/config"
	"github.com/m-orlov/pairlist/internal/domain/repository"
	"github.com/m-orlov/pairlist/internal/presence"
)

// Module wires the relay engine and its admission/retention collaborators.
var Module = fx.Options(
	fx.Provide(newAdmission),
	fx.Provide(newRetention),
	fx.Provide(newEngine),
)

type admissionParams struct {
	fx.In

	Orders repository.OrderRepository
	Config *config.Config
}

func newAdmission(p admissionParams) *Admission {
	return NewAdmission(p.Orders, p.Config.PendingLimit)
}

type retentionParams struct {
	fx.In

	Orders repository.OrderRepository
	Config *config.Config
	Logger *slog.Logger
}

func newRetention(p retentionParams) *Retention {
	return NewRetention(p.Orders, p.Config.HistoryLimit, p.Logger)
}

type engineParams struct {
	fx.In

	Users     repository.UserRepository
	Orders    repository.OrderRepository
	Registry  *presence.Registry
	Admission *Admission
	Retention *Retention
	Notifier  Notifier
	Logger    *slog.Logger
}

func newEngine(p engineParams) *Engine {
	return NewEngine(p.Users, p.Orders, p.Registry, p.Admission, p.Retention, p.Notifier, p.Logger)
}
