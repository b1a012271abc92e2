package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNoPartner          = errors.New("no partner linked")
	ErrQueueFull          = errors.New("pending queue full")
	ErrLimitReached       = errors.New("limit reached")
	ErrInvalidItems       = errors.New("invalid items")
	ErrForbidden          = errors.New("operation not allowed for role")
)
