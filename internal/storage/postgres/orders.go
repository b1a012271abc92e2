package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
	"github.com/m-orlov/pairlist/internal/domain/model"
)

// Create admits the order only while the receiver's pending count stays below
// pendingLimit; check and insert happen in one statement, so concurrent sends
// cannot overshoot the bound.
func (r *orderRepository) Create(ctx context.Context, senderID, receiverID int64, items map[string]int, pendingLimit int) (*model.Order, bool, error) {
	const query = `INSERT INTO orders (sender_id, receiver_id, items, status)
                   SELECT $1, $2, $3, $4
                   WHERE (SELECT COUNT(*) FROM orders WHERE receiver_id=$2 AND status=$4) < $5
                   RETURNING id, created_at`
	order := model.Order{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Items:      items,
		Status:     model.OrderStatusPending,
	}
	err := r.storage.pool.QueryRow(ctx, query, senderID, receiverID, items, model.OrderStatusPending, pendingLimit).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &order, true, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT id, sender_id, receiver_id, items, status, created_at, completed_at
                   FROM orders WHERE id=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, id).
		Scan(&o.ID, &o.SenderID, &o.ReceiverID, &o.Items, &o.Status, &o.CreatedAt, &o.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	result := []model.Order{o}
	if err := r.attachFeedback(ctx, result); err != nil {
		return nil, err
	}
	return &result[0], nil
}

func (r *orderRepository) ListPending(ctx context.Context, receiverID int64, limit int) ([]model.Order, error) {
	const query = `SELECT id, sender_id, receiver_id, items, status, created_at, completed_at
                   FROM orders
                   WHERE receiver_id=$1 AND status=$2
                   ORDER BY created_at
                   LIMIT $3`
	orders, err := r.queryOrders(ctx, query, receiverID, model.OrderStatusPending, limit)
	if err != nil {
		return nil, err
	}
	if err := r.attachFeedback(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ListPendingSent(ctx context.Context, senderID int64, limit int) ([]model.Order, error) {
	const query = `SELECT o.id, o.sender_id, o.receiver_id, o.items, o.status, o.created_at, o.completed_at, u.display_name
                   FROM orders o
                   JOIN users u ON u.id = o.receiver_id
                   WHERE o.sender_id=$1 AND o.status=$2
                   ORDER BY o.created_at DESC
                   LIMIT $3`
	return r.queryOrdersWithCounterpart(ctx, query, senderID, model.OrderStatusPending, limit)
}

func (r *orderRepository) ListCompleted(ctx context.Context, userID int64, role model.Role, limit int) ([]model.Order, error) {
	const sentQuery = `SELECT o.id, o.sender_id, o.receiver_id, o.items, o.status, o.created_at, o.completed_at, u.display_name
                       FROM orders o
                       JOIN users u ON u.id = o.receiver_id
                       WHERE o.sender_id=$1 AND o.status = ANY($2)
                       ORDER BY o.completed_at DESC
                       LIMIT $3`
	const receivedQuery = `SELECT o.id, o.sender_id, o.receiver_id, o.items, o.status, o.created_at, o.completed_at, u.display_name
                           FROM orders o
                           JOIN users u ON u.id = o.sender_id
                           WHERE o.receiver_id=$1 AND o.status = ANY($2)
                           ORDER BY o.completed_at DESC
                           LIMIT $3`
	query := sentQuery
	if role == model.RoleReceiver {
		query = receivedQuery
	}
	orders, err := r.queryOrdersWithCounterpart(ctx, query, userID, terminalStatuses(), limit)
	if err != nil {
		return nil, err
	}
	if err := r.attachFeedback(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) CountPending(ctx context.Context, receiverID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE receiver_id=$1 AND status=$2`
	var count int
	if err := r.storage.pool.QueryRow(ctx, query, receiverID, model.OrderStatusPending).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Complete is the single conditional status transition: it succeeds only for
// a pending order owned by receiverID. A second resolution finds no pending
// row and reports ErrNotFound, which callers treat as a no-op.
func (r *orderRepository) Complete(ctx context.Context, id, receiverID int64, status model.OrderStatus) (*model.Order, error) {
	const query = `UPDATE orders
                   SET status=$3, completed_at=NOW()
                   WHERE id=$1 AND receiver_id=$2 AND status=$4
                   RETURNING id, sender_id, receiver_id, items, status, created_at, completed_at`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, id, receiverID, status, model.OrderStatusPending).
		Scan(&o.ID, &o.SenderID, &o.ReceiverID, &o.Items, &o.Status, &o.CreatedAt, &o.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) AppendFeedback(ctx context.Context, id int64, entry model.ItemFeedback) error {
	const query = `INSERT INTO order_feedback (order_id, item_name, status, created_at)
                   VALUES ($1, $2, $3, $4)`
	_, err := r.storage.pool.Exec(ctx, query, id, entry.ItemName, entry.Status, entry.Timestamp)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *orderRepository) TrimCompleted(ctx context.Context, userID int64, role model.Role, keep int) (int64, error) {
	const sentQuery = `DELETE FROM orders WHERE id IN (
                           SELECT id FROM orders
                           WHERE sender_id=$1 AND status = ANY($2)
                           ORDER BY completed_at DESC
                           OFFSET $3)`
	const receivedQuery = `DELETE FROM orders WHERE id IN (
                               SELECT id FROM orders
                               WHERE receiver_id=$1 AND status = ANY($2)
                               ORDER BY completed_at DESC
                               OFFSET $3)`
	query := sentQuery
	if role == model.RoleReceiver {
		query = receivedQuery
	}
	tag, err := r.storage.pool.Exec(ctx, query, userID, terminalStatuses(), keep)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepository) RetentionCandidates(ctx context.Context, keep, limit int) ([]model.RetentionCandidate, error) {
	const query = `SELECT user_id, role FROM (
                       SELECT sender_id AS user_id, 'sender' AS role
                       FROM orders WHERE status = ANY($1)
                       GROUP BY sender_id HAVING COUNT(*) > $2
                       UNION ALL
                       SELECT receiver_id AS user_id, 'receiver' AS role
                       FROM orders WHERE status = ANY($1)
                       GROUP BY receiver_id HAVING COUNT(*) > $2
                   ) candidates
                   LIMIT $3`
	rows, err := r.storage.pool.Query(ctx, query, terminalStatuses(), keep, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.RetentionCandidate
	for rows.Next() {
		var c model.RetentionCandidate
		if err := rows.Scan(&c.UserID, &c.Role); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Stats(ctx context.Context, userID int64, role model.Role) (*model.OrderStats, error) {
	const sentQuery = `SELECT COUNT(*) FILTER (WHERE status=$2), COUNT(*) FILTER (WHERE status=$3)
                       FROM orders WHERE sender_id=$1`
	const receivedQuery = `SELECT COUNT(*) FILTER (WHERE status=$2), COUNT(*) FILTER (WHERE status=$3)
                           FROM orders WHERE receiver_id=$1`
	query := sentQuery
	if role == model.RoleReceiver {
		query = receivedQuery
	}
	var stats model.OrderStats
	err := r.storage.pool.QueryRow(ctx, query, userID, model.OrderStatusAcknowledged, model.OrderStatusRejected).
		Scan(&stats.Acknowledged, &stats.Rejected)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *orderRepository) DeleteByUser(ctx context.Context, userID int64) error {
	const query = `DELETE FROM orders WHERE sender_id=$1 OR receiver_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return err
}

func terminalStatuses() []string {
	return []string{string(model.OrderStatusAcknowledged), string(model.OrderStatusRejected)}
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.SenderID, &o.ReceiverID, &o.Items, &o.Status, &o.CreatedAt, &o.CompletedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) queryOrdersWithCounterpart(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.SenderID, &o.ReceiverID, &o.Items, &o.Status, &o.CreatedAt, &o.CompletedAt, &o.Counterpart); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// attachFeedback loads per-item feedback for the given orders in one query.
func (r *orderRepository) attachFeedback(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
	}

	const query = `SELECT order_id, item_name, status, created_at
                   FROM order_feedback
                   WHERE order_id = ANY($1)
                   ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var fb model.ItemFeedback
		if err := rows.Scan(&orderID, &fb.ItemName, &fb.Status, &fb.Timestamp); err != nil {
			return err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Feedback = append(orders[i].Feedback, fb)
		}
	}
	return rows.Err()
}
