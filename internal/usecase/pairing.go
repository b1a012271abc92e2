package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
	"github.com/m-orlov/pairlist/internal/domain/model"
	"github.com/m-orlov/pairlist/internal/domain/repository"
)

// PairingUseCase manages the sender-to-receiver linkage. Only senders
// initiate requests and only receivers resolve them; a successful accept
// links both sides symmetrically.
type PairingUseCase struct {
	users repository.UserRepository
}

// NewPairingUseCase constructs PairingUseCase.
func NewPairingUseCase(users repository.UserRepository) *PairingUseCase {
	return &PairingUseCase{users: users}
}

// SearchReceiver finds an unconnected receiver by login for a sender to pair
// with.
func (u *PairingUseCase) SearchReceiver(ctx context.Context, senderID int64, login string) (*model.User, error) {
	sender, err := u.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender.Role != model.RoleSender {
		return nil, domainErrors.ErrForbidden
	}

	candidate, err := u.users.GetByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		return nil, err
	}
	if candidate.ID == senderID || candidate.Role != model.RoleReceiver {
		return nil, domainErrors.ErrNotFound
	}
	return candidate, nil
}

// Request records a pairing request from a sender to a receiver and returns
// the sender for notification purposes. Repeated requests are idempotent.
func (u *PairingUseCase) Request(ctx context.Context, senderID, targetID int64) (*model.User, error) {
	sender, err := u.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender.Role != model.RoleSender {
		return nil, domainErrors.ErrForbidden
	}

	target, err := u.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.Role != model.RoleReceiver {
		return nil, domainErrors.ErrInvalidRole
	}

	if err := u.users.CreatePairRequest(ctx, senderID, targetID); err != nil {
		return nil, err
	}
	return sender, nil
}

// Accept links the receiver with the requesting sender and returns the
// receiver for notification purposes.
func (u *PairingUseCase) Accept(ctx context.Context, receiverID, requesterID int64) (*model.User, error) {
	receiver, err := u.users.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if receiver.Role != model.RoleReceiver {
		return nil, domainErrors.ErrForbidden
	}

	requester, err := u.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester.Role != model.RoleSender {
		return nil, domainErrors.ErrInvalidRole
	}

	if err := u.users.Link(ctx, requesterID, receiverID); err != nil {
		return nil, err
	}
	return receiver, nil
}

// Reject drops the pairing request and returns the receiver for notification
// purposes.
func (u *PairingUseCase) Reject(ctx context.Context, receiverID, requesterID int64) (*model.User, error) {
	receiver, err := u.users.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if receiver.Role != model.RoleReceiver {
		return nil, domainErrors.ErrForbidden
	}

	if err := u.users.DeletePairRequest(ctx, requesterID, receiverID); err != nil {
		return nil, err
	}
	return receiver, nil
}

// Requests lists the receiver's pending pairing requests, oldest first.
func (u *PairingUseCase) Requests(ctx context.Context, receiverID int64) ([]model.PairRequest, error) {
	return u.users.ListPairRequests(ctx, receiverID)
}
