package model

import "time"

// Role distinguishes the two sides of a pair: senders build and submit
// orders, receivers resolve them.
type Role string

const (
	RoleSender   Role = "sender"
	RoleReceiver Role = "receiver"
)

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool {
	return r == RoleSender || r == RoleReceiver
}

// User represents a registered account. PartnerID is nil until the user is
// paired; pairing is symmetric, each side references the other.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	DisplayName  string
	PartnerID    *int64
	PushEndpoint string
	Categories   []string
	CustomItems  []string
	CreatedAt    time.Time
}

// PairRequest is a not-yet-accepted connection request from a sender to a
// receiver.
type PairRequest struct {
	SenderID    int64
	ReceiverID  int64
	Login       string
	DisplayName string
	RequestedAt time.Time
}
