package repository

import (
	"context"

	"github.com/m-orlov/pairlist/internal/domain/model"
)

// UserRepository describes persistence operations for users and pairing.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash string, role model.Role, displayName string) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, displayName, passwordHash *string) (*model.User, error)
	SetPushEndpoint(ctx context.Context, id int64, endpoint string) error
	// Delete removes the account, clears the counterpart's partner linkage
	// and cascades to the user's orders and presets.
	Delete(ctx context.Context, id int64) error

	// Pairing.
	CreatePairRequest(ctx context.Context, senderID, receiverID int64) error
	DeletePairRequest(ctx context.Context, senderID, receiverID int64) error
	ListPairRequests(ctx context.Context, receiverID int64) ([]model.PairRequest, error)
	// Link sets the symmetric partner linkage between the two users and
	// drops the originating pair request.
	Link(ctx context.Context, senderID, receiverID int64) error

	// Saved custom item names, set semantics.
	AddCustomItem(ctx context.Context, id int64, name string, limit int) error
	RemoveCustomItem(ctx context.Context, id int64, name string) error

	// Categories.
	AddCategory(ctx context.Context, id int64, name string, limit int) error
	// RemoveCategory drops the category and every preset bound to it.
	RemoveCategory(ctx context.Context, id int64, name string) error
}
