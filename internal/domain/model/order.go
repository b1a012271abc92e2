package model

import "time"

// OrderStatus describes the order lifecycle. Pending orders move exactly once
// to a terminal status on receiver action; there is no way back.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusAcknowledged OrderStatus = "acknowledged"
	OrderStatusRejected     OrderStatus = "rejected"
)

// Terminal reports whether the status is one of the two resolutions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusAcknowledged || s == OrderStatusRejected
}

// FeedbackStatus is a per-item accept/reject signal. It is advisory and
// independent of the order's own status.
type FeedbackStatus string

const (
	FeedbackAcknowledged FeedbackStatus = "acknowledged"
	FeedbackRejected     FeedbackStatus = "rejected"
)

// ItemFeedback is one append-only entry of the order's per-item feedback log.
type ItemFeedback struct {
	ItemName  string         `json:"itemName"`
	Status    FeedbackStatus `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
}

// Order is one sender-to-receiver itemized request.
type Order struct {
	ID          int64
	SenderID    int64
	ReceiverID  int64
	Items       map[string]int
	Status      OrderStatus
	Feedback    []ItemFeedback
	CreatedAt   time.Time
	CompletedAt *time.Time

	// Counterpart is the display name of the other side of the order.
	// Populated only by history queries.
	Counterpart string
}

// OrderStats aggregates terminal resolutions for one user in one role.
type OrderStats struct {
	Acknowledged int
	Rejected     int
}

// RetentionCandidate identifies a user/role pair whose completed history
// exceeds the retention window.
type RetentionCandidate struct {
	UserID int64
	Role   Role
}
