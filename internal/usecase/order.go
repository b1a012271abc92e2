package usecase

import (
	"context"

	"github.com/m-orlov/pairlist/internal/config"
	"github.com/m-orlov/pairlist/internal/domain/model"
	"github.com/m-orlov/pairlist/internal/domain/repository"
)

// OrderUseCase exposes the read side of the order queue and history for the
// HTTP API. Mutation goes through the relay engine.
type OrderUseCase struct {
	orders       repository.OrderRepository
	pendingLimit int
	historyLimit int
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, cfg *config.Config) *OrderUseCase {
	return &OrderUseCase{
		orders:       orders,
		pendingLimit: cfg.PendingLimit,
		historyLimit: cfg.HistoryLimit,
	}
}

// PendingReceived lists a receiver's pending orders, oldest first.
func (u *OrderUseCase) PendingReceived(ctx context.Context, receiverID int64) ([]model.Order, error) {
	return u.orders.ListPending(ctx, receiverID, u.pendingLimit)
}

// PendingSent lists a sender's not-yet-resolved orders, newest first.
func (u *OrderUseCase) PendingSent(ctx context.Context, senderID int64) ([]model.Order, error) {
	return u.orders.ListPendingSent(ctx, senderID, u.historyLimit)
}

// HistorySent lists a sender's completed orders, most recent first.
func (u *OrderUseCase) HistorySent(ctx context.Context, senderID int64) ([]model.Order, error) {
	return u.orders.ListCompleted(ctx, senderID, model.RoleSender, u.historyLimit)
}

// HistoryReceived lists a receiver's completed orders, most recent first.
func (u *OrderUseCase) HistoryReceived(ctx context.Context, receiverID int64) ([]model.Order, error) {
	return u.orders.ListCompleted(ctx, receiverID, model.RoleReceiver, u.historyLimit)
}

// Stats reports acknowledged and rejected counts for the user in the given
// role.
func (u *OrderUseCase) Stats(ctx context.Context, userID int64, role model.Role) (*model.OrderStats, error) {
	return u.orders.Stats(ctx, userID, role)
}

// RetentionCandidates lists user/role pairs whose completed history grew past
// the retention window.
func (u *OrderUseCase) RetentionCandidates(ctx context.Context, limit int) ([]model.RetentionCandidate, error) {
	return u.orders.RetentionCandidates(ctx, u.historyLimit, limit)
}
