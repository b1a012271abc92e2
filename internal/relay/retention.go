package relay

import (
	"context"
	"log/slog"

	"github.com/m-orlov/pairlist/internal/domain/model"
	"github.com/m-orlov/pairlist/internal/domain/repository"
)

// Retention keeps each user's completed-order history bounded. Sent and
// received histories are trimmed independently: a heavy sender and light
// receiver keeps the full window of each.
type Retention struct {
	orders repository.OrderRepository
	keep   int
	logger *slog.Logger
}

// NewRetention constructs Retention with the per-role history window.
func NewRetention(orders repository.OrderRepository, keep int, logger *slog.Logger) *Retention {
	if keep <= 0 {
		keep = 10
	}
	return &Retention{orders: orders, keep: keep, logger: logger}
}

// Trim deletes the user's resolved orders in the given role beyond the
// retention window, oldest completions first.
func (r *Retention) Trim(ctx context.Context, userID int64, role model.Role) error {
	removed, err := r.orders.TrimCompleted(ctx, userID, role, r.keep)
	if err != nil {
		return err
	}
	if removed > 0 {
		r.logger.Info("trimmed order history",
			slog.Int64("user_id", userID),
			slog.String("role", string(role)),
			slog.Int64("removed", removed))
	}
	return nil
}

// Keep returns the configured window size.
func (r *Retention) Keep() int {
	return r.keep
}
