package push

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-orlov/pairlist/internal/domain/repository"
)

// Dispatcher resolves a user's registered endpoint and fires a notification
// without blocking the caller. Users with no endpoint are skipped silently.
type Dispatcher struct {
	users   repository.UserRepository
	sender  Sender
	timeout time.Duration
	logger  *slog.Logger
}

// NewDispatcher constructs Dispatcher.
func NewDispatcher(users repository.UserRepository, sender Sender, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{users: users, sender: sender, timeout: timeout, logger: logger}
}

// Notify delivers the alert in the background. The delivery outlives the
// caller's context on purpose: relay events must not wait on push I/O.
func (d *Dispatcher) Notify(userID int64, title, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		user, err := d.users.GetByID(ctx, userID)
		if err != nil {
			d.logger.Warn("push skipped, user lookup failed",
				slog.Int64("user_id", userID), slog.String("error", err.Error()))
			return
		}
		if user.PushEndpoint == "" {
			return
		}

		if err := d.sender.Send(ctx, user.PushEndpoint, Notification{Title: title, Body: body}); err != nil {
			d.logger.Warn("push delivery failed",
				slog.Int64("user_id", userID), slog.String("error", err.Error()))
		}
	}()
}
