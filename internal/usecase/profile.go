package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
	"github.com/m-orlov/pairlist/internal/domain/model"
	"github.com/m-orlov/pairlist/internal/domain/repository"
	pkgAuth "github.com/m-orlov/pairlist/internal/pkg/auth"
)

// ProfileUseCase covers account self-management: profile reads and edits,
// push endpoint registration and account removal.
type ProfileUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher) *ProfileUseCase {
	return &ProfileUseCase{users: users, hasher: hasher}
}

// Get returns the user's profile.
func (u *ProfileUseCase) Get(ctx context.Context, userID int64) (*model.User, error) {
	return u.users.GetByID(ctx, userID)
}

// Update changes display name and, when a new password is supplied, the
// password. A password change requires the current password to match.
func (u *ProfileUseCase) Update(ctx context.Context, userID int64, displayName, currentPassword, newPassword string) (*model.User, error) {
	var namePtr, hashPtr *string

	if trimmed := strings.TrimSpace(displayName); trimmed != "" {
		namePtr = &trimmed
	}

	if newPassword != "" {
		if currentPassword == "" {
			return nil, domainErrors.ErrInvalidCredentials
		}
		current, err := u.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := u.hasher.Compare(current.PasswordHash, currentPassword); err != nil {
			return nil, domainErrors.ErrInvalidCredentials
		}
		hash, err := u.hasher.Hash(newPassword)
		if err != nil {
			return nil, err
		}
		hashPtr = &hash
	}

	return u.users.UpdateProfile(ctx, userID, namePtr, hashPtr)
}

// RegisterPushEndpoint stores the endpoint push alerts are delivered to. An
// empty endpoint clears the registration.
func (u *ProfileUseCase) RegisterPushEndpoint(ctx context.Context, userID int64, endpoint string) error {
	return u.users.SetPushEndpoint(ctx, userID, strings.TrimSpace(endpoint))
}

// Delete removes the account. Orders on either side go with it and the
// partner, if any, is unlinked.
func (u *ProfileUseCase) Delete(ctx context.Context, userID int64) error {
	return u.users.Delete(ctx, userID)
}
