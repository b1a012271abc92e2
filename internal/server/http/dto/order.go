package dto

import "time"

// FeedbackEntryResponse describes a per-item note attached to an order.
type FeedbackEntryResponse struct {
	ItemName  string    `json:"itemName"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderResponse describes one order in a pending or history listing.
type OrderResponse struct {
	ID          int64                   `json:"id"`
	Items       map[string]int          `json:"items"`
	Status      string                  `json:"status"`
	Counterpart string                  `json:"counterpart,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
	CompletedAt *time.Time              `json:"completedAt,omitempty"`
	Feedback    []FeedbackEntryResponse `json:"itemFeedback,omitempty"`
}

// StatsResponse reports acknowledged and rejected totals for one role.
type StatsResponse struct {
	Acknowledged int `json:"acknowledged"`
	Rejected     int `json:"rejected"`
}
