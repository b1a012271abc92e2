package repository

import (
	"context"

	"github.com/m-orlov/pairlist/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create inserts a new pending order unless the receiver already has
	// pendingLimit pending orders. The second return value reports whether
	// the order was admitted; when false no record is created.
	Create(ctx context.Context, senderID, receiverID int64, items map[string]int, pendingLimit int) (*model.Order, bool, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// ListPending returns the receiver's pending orders, oldest first.
	ListPending(ctx context.Context, receiverID int64, limit int) ([]model.Order, error)
	// ListPendingSent returns the sender's pending orders, newest first.
	ListPendingSent(ctx context.Context, senderID int64, limit int) ([]model.Order, error)
	// ListCompleted returns resolved orders for the user in the given role,
	// most recently completed first, with the counterpart display name set.
	ListCompleted(ctx context.Context, userID int64, role model.Role, limit int) ([]model.Order, error)
	CountPending(ctx context.Context, receiverID int64) (int, error)
	// Complete moves a pending order owned by receiverID to a terminal
	// status and stamps completedAt. Returns ErrNotFound when no such
	// pending order exists, which makes repeated resolutions no-ops.
	Complete(ctx context.Context, id, receiverID int64, status model.OrderStatus) (*model.Order, error)
	AppendFeedback(ctx context.Context, id int64, entry model.ItemFeedback) error
	// TrimCompleted deletes the user's resolved orders in the given role
	// beyond the keep most recently completed. Returns how many rows went.
	TrimCompleted(ctx context.Context, userID int64, role model.Role, keep int) (int64, error)
	// RetentionCandidates lists user/role pairs whose completed history
	// exceeds keep entries.
	RetentionCandidates(ctx context.Context, keep, limit int) ([]model.RetentionCandidate, error)
	Stats(ctx context.Context, userID int64, role model.Role) (*model.OrderStats, error)
	// DeleteByUser removes every order the user participates in, either side.
	DeleteByUser(ctx context.Context, userID int64) error
}
