package relay

import (
	"context"

	"github.com/m-orlov/pairlist/internal/domain/repository"
)

// Admission gates order creation on the receiver's pending count. The check
// runs synchronously right before the insert; the insert itself re-checks the
// bound in one statement, so the pre-check is a fast path for the explicit
// queue_full signal rather than the enforcement mechanism.
type Admission struct {
	orders repository.OrderRepository
	limit  int
}

// NewAdmission constructs Admission with the pending-orders bound.
func NewAdmission(orders repository.OrderRepository, limit int) *Admission {
	if limit <= 0 {
		limit = 5
	}
	return &Admission{orders: orders, limit: limit}
}

// CanAdmit reports whether the receiver has room for one more pending order.
func (a *Admission) CanAdmit(ctx context.Context, receiverID int64) (bool, error) {
	count, err := a.orders.CountPending(ctx, receiverID)
	if err != nil {
		return false, err
	}
	return count < a.limit, nil
}

// Limit returns the configured bound.
func (a *Admission) Limit() int {
	return a.limit
}
