package handlers

import (
	"context"

	"github.com/m-orlov/pairlist/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, role, displayName string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// ProfileFacade covers account introspection and maintenance.
type ProfileFacade interface {
	Profile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, displayName, currentPassword, newPassword string) error
	RegisterPushEndpoint(ctx context.Context, userID int64, endpoint string) error
	DeleteAccount(ctx context.Context, userID int64) error
}

// PairingFacade covers sender/receiver linkage operations.
type PairingFacade interface {
	SearchReceiver(ctx context.Context, senderID int64, login string) (*model.User, error)
	RequestPair(ctx context.Context, senderID, targetID int64) error
	AcceptPair(ctx context.Context, receiverID, requesterID int64) error
	RejectPair(ctx context.Context, receiverID, requesterID int64) error
	PairRequests(ctx context.Context, receiverID int64) ([]model.PairRequest, error)
}

// OrderFacade exposes order queue and history queries over HTTP.
type OrderFacade interface {
	PendingReceived(ctx context.Context, userID int64) ([]model.Order, error)
	PendingSent(ctx context.Context, userID int64) ([]model.Order, error)
	HistorySent(ctx context.Context, userID int64) ([]model.Order, error)
	HistoryReceived(ctx context.Context, userID int64) ([]model.Order, error)
	OrderStats(ctx context.Context, userID int64, role model.Role) (*model.OrderStats, error)
}

// PresetFacade covers order templates, categories and custom items.
type PresetFacade interface {
	Presets(ctx context.Context, userID int64) ([]model.Preset, error)
	CreatePreset(ctx context.Context, userID int64, name, category string, items []model.PresetItem) (*model.Preset, error)
	UpdatePreset(ctx context.Context, userID, presetID int64, name, category string, items []model.PresetItem) (*model.Preset, error)
	DeletePreset(ctx context.Context, userID, presetID int64) error
	AddCategory(ctx context.Context, userID int64, name string) error
	RemoveCategory(ctx context.Context, userID int64, name string) error
	AddCustomItem(ctx context.Context, userID int64, name string) error
	RemoveCustomItem(ctx context.Context, userID int64, name string) error
}

// PairlistFacade aggregates the full set of operations used across handlers.
type PairlistFacade interface {
	AuthFacade
	ProfileFacade
	PairingFacade
	OrderFacade
	PresetFacade
}
