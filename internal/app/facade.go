package app

import (
	"context"

	"github.com/m-orlov/pairlist/internal/domain/model"
	"github.com/m-orlov/pairlist/internal/relay"
	"github.com/m-orlov/pairlist/internal/usecase"
)

// PairlistFacade aggregates use cases behind the surface consumed by HTTP
// handlers and the retention worker. Pairing operations additionally fan out
// live notifications through the relay engine.
type PairlistFacade struct {
	auth      *usecase.AuthUseCase
	profile   *usecase.ProfileUseCase
	pairing   *usecase.PairingUseCase
	orders    *usecase.OrderUseCase
	presets   *usecase.PresetUseCase
	engine    *relay.Engine
	retention *relay.Retention
}

// NewPairlistFacade constructs the facade.
func NewPairlistFacade(
	auth *usecase.AuthUseCase,
	profile *usecase.ProfileUseCase,
	pairing *usecase.PairingUseCase,
	orders *usecase.OrderUseCase,
	presets *usecase.PresetUseCase,
	engine *relay.Engine,
	retention *relay.Retention,
) *PairlistFacade {
	return &PairlistFacade{
		auth:      auth,
		profile:   profile,
		pairing:   pairing,
		orders:    orders,
		presets:   presets,
		engine:    engine,
		retention: retention,
	}
}

func (f *PairlistFacade) Register(ctx context.Context, login, password, role, displayName string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, model.Role(role), displayName)
	return token, err
}

func (f *PairlistFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *PairlistFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *PairlistFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.profile.Get(ctx, userID)
}

func (f *PairlistFacade) UpdateProfile(ctx context.Context, userID int64, displayName, currentPassword, newPassword string) error {
	_, err := f.profile.Update(ctx, userID, displayName, currentPassword, newPassword)
	return err
}

func (f *PairlistFacade) RegisterPushEndpoint(ctx context.Context, userID int64, endpoint string) error {
	return f.profile.RegisterPushEndpoint(ctx, userID, endpoint)
}

func (f *PairlistFacade) DeleteAccount(ctx context.Context, userID int64) error {
	return f.profile.Delete(ctx, userID)
}

func (f *PairlistFacade) SearchReceiver(ctx context.Context, senderID int64, login string) (*model.User, error) {
	return f.pairing.SearchReceiver(ctx, senderID, login)
}

func (f *PairlistFacade) RequestPair(ctx context.Context, senderID, targetID int64) error {
	sender, err := f.pairing.Request(ctx, senderID, targetID)
	if err != nil {
		return err
	}
	f.engine.PairRequested(sender, targetID)
	return nil
}

func (f *PairlistFacade) AcceptPair(ctx context.Context, receiverID, requesterID int64) error {
	receiver, err := f.pairing.Accept(ctx, receiverID, requesterID)
	if err != nil {
		return err
	}
	f.engine.PairAccepted(receiver, requesterID)
	return nil
}

func (f *PairlistFacade) RejectPair(ctx context.Context, receiverID, requesterID int64) error {
	receiver, err := f.pairing.Reject(ctx, receiverID, requesterID)
	if err != nil {
		return err
	}
	f.engine.PairRejected(receiver, requesterID)
	return nil
}

func (f *PairlistFacade) PairRequests(ctx context.Context, receiverID int64) ([]model.PairRequest, error) {
	return f.pairing.Requests(ctx, receiverID)
}

func (f *PairlistFacade) PendingReceived(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.PendingReceived(ctx, userID)
}

func (f *PairlistFacade) PendingSent(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.PendingSent(ctx, userID)
}

func (f *PairlistFacade) HistorySent(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.HistorySent(ctx, userID)
}

func (f *PairlistFacade) HistoryReceived(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.HistoryReceived(ctx, userID)
}

func (f *PairlistFacade) OrderStats(ctx context.Context, userID int64, role model.Role) (*model.OrderStats, error) {
	return f.orders.Stats(ctx, userID, role)
}

func (f *PairlistFacade) Presets(ctx context.Context, userID int64) ([]model.Preset, error) {
	return f.presets.List(ctx, userID)
}

func (f *PairlistFacade) CreatePreset(ctx context.Context, userID int64, name, category string, items []model.PresetItem) (*model.Preset, error) {
	return f.presets.Create(ctx, userID, name, category, items)
}

func (f *PairlistFacade) UpdatePreset(ctx context.Context, userID, presetID int64, name, category string, items []model.PresetItem) (*model.Preset, error) {
	return f.presets.Update(ctx, userID, presetID, name, category, items)
}

func (f *PairlistFacade) DeletePreset(ctx context.Context, userID, presetID int64) error {
	return f.presets.Delete(ctx, userID, presetID)
}

func (f *PairlistFacade) AddCategory(ctx context.Context, userID int64, name string) error {
	return f.presets.AddCategory(ctx, userID, name)
}

func (f *PairlistFacade) RemoveCategory(ctx context.Context, userID int64, name string) error {
	return f.presets.RemoveCategory(ctx, userID, name)
}

func (f *PairlistFacade) AddCustomItem(ctx context.Context, userID int64, name string) error {
	return f.presets.AddCustomItem(ctx, userID, name)
}

func (f *PairlistFacade) RemoveCustomItem(ctx context.Context, userID int64, name string) error {
	return f.presets.RemoveCustomItem(ctx, userID, name)
}

func (f *PairlistFacade) RetentionCandidates(ctx context.Context, limit int) ([]model.RetentionCandidate, error) {
	return f.orders.RetentionCandidates(ctx, limit)
}

func (f *PairlistFacade) TrimHistory(ctx context.Context, userID int64, role model.Role) error {
	return f.retention.Trim(ctx, userID, role)
}
