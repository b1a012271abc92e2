package auth

import "time"

// Strategy issues and validates auth tokens carrying a user identifier.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
}

// Options tunes token issuance.
type Options struct {
	TTL time.Duration
}
