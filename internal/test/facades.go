package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m-orlov/pairlist/internal/domain/model"
)

// ProfileFacadeStub provides controllable behaviour for profile endpoints.
type ProfileFacadeStub struct {
	ProfileFn   func(context.Context, int64) (*model.User, error)
	UpdateFn    func(context.Context, int64, string, string, string) error
	RegisterFn  func(context.Context, int64, string) error
	DeleteFn    func(context.Context, int64) error
	DeleteCalls []int64
}

// Profile returns configured user or a deterministic default.
func (s *ProfileFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Login: "user", Role: model.RoleSender, DisplayName: "User"}, nil
}

// UpdateProfile delegates to the override when provided.
func (s *ProfileFacadeStub) UpdateProfile(ctx context.Context, userID int64, displayName, currentPassword, newPassword string) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, displayName, currentPassword, newPassword)
	}
	return nil
}

// RegisterPushEndpoint delegates to the override when provided.
func (s *ProfileFacadeStub) RegisterPushEndpoint(ctx context.Context, userID int64, endpoint string) error {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, userID, endpoint)
	}
	return nil
}

// DeleteAccount records deletions.
func (s *ProfileFacadeStub) DeleteAccount(ctx context.Context, userID int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, userID)
	}
	s.DeleteCalls = append(s.DeleteCalls, userID)
	return nil
}

// PairingFacadeStub simulates pairing operations.
type PairingFacadeStub struct {
	SearchFn   func(context.Context, int64, string) (*model.User, error)
	RequestFn  func(context.Context, int64, int64) error
	AcceptFn   func(context.Context, int64, int64) error
	RejectFn   func(context.Context, int64, int64) error
	RequestsFn func(context.Context, int64) ([]model.PairRequest, error)
}

// SearchReceiver returns configured candidate or a default receiver.
func (s PairingFacadeStub) SearchReceiver(ctx context.Context, senderID int64, login string) (*model.User, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, senderID, login)
	}
	return &model.User{ID: 2, Login: login, Role: model.RoleReceiver, DisplayName: "Receiver"}, nil
}

// RequestPair delegates to the override when provided.
func (s PairingFacadeStub) RequestPair(ctx context.Context, senderID, targetID int64) error {
	if s.RequestFn != nil {
		return s.RequestFn(ctx, senderID, targetID)
	}
	return nil
}

// AcceptPair delegates to the override when provided.
func (s PairingFacadeStub) AcceptPair(ctx context.Context, receiverID, requesterID int64) error {
	if s.AcceptFn != nil {
		return s.AcceptFn(ctx, receiverID, requesterID)
	}
	return nil
}

// RejectPair delegates to the override when provided.
func (s PairingFacadeStub) RejectPair(ctx context.Context, receiverID, requesterID int64) error {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, receiverID, requesterID)
	}
	return nil
}

// PairRequests returns configured requests.
func (s PairingFacadeStub) PairRequests(ctx context.Context, receiverID int64) ([]model.PairRequest, error) {
	if s.RequestsFn != nil {
		return s.RequestsFn(ctx, receiverID)
	}
	return []model.PairRequest{{SenderID: 1, ReceiverID: receiverID, Login: "sender", RequestedAt: time.Unix(0, 0)}}, nil
}

// OrderFacadeStub provides controllable behaviour for order query endpoints.
type OrderFacadeStub struct {
	PendingReceivedFn func(context.Context, int64) ([]model.Order, error)
	PendingSentFn     func(context.Context, int64) ([]model.Order, error)
	HistorySentFn     func(context.Context, int64) ([]model.Order, error)
	HistoryReceivedFn func(context.Context, int64) ([]model.Order, error)
	StatsFn           func(context.Context, int64, model.Role) (*model.OrderStats, error)
}

// PendingReceived returns predefined orders for the given user.
func (s OrderFacadeStub) PendingReceived(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.PendingReceivedFn != nil {
		return s.PendingReceivedFn(ctx, userID)
	}
	return []model.Order{{ID: 1, ReceiverID: userID, Status: model.OrderStatusPending}}, nil
}

// PendingSent returns predefined orders for the given user.
func (s OrderFacadeStub) PendingSent(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.PendingSentFn != nil {
		return s.PendingSentFn(ctx, userID)
	}
	return []model.Order{{ID: 1, SenderID: userID, Status: model.OrderStatusPending}}, nil
}

// HistorySent returns predefined completed orders.
func (s OrderFacadeStub) HistorySent(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.HistorySentFn != nil {
		return s.HistorySentFn(ctx, userID)
	}
	return nil, nil
}

// HistoryReceived returns predefined completed orders.
func (s OrderFacadeStub) HistoryReceived(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.HistoryReceivedFn != nil {
		return s.HistoryReceivedFn(ctx, userID)
	}
	return nil, nil
}

// OrderStats returns predefined aggregate counts.
func (s OrderFacadeStub) OrderStats(ctx context.Context, userID int64, role model.Role) (*model.OrderStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, userID, role)
	}
	return &model.OrderStats{Acknowledged: 2, Rejected: 1}, nil
}

// PresetFacadeStub simulates preset operations.
type PresetFacadeStub struct {
	ListFn         func(context.Context, int64) ([]model.Preset, error)
	CreateFn       func(context.Context, int64, string, string, []model.PresetItem) (*model.Preset, error)
	UpdateFn       func(context.Context, int64, int64, string, string, []model.PresetItem) (*model.Preset, error)
	DeleteFn       func(context.Context, int64, int64) error
	AddCategoryFn  func(context.Context, int64, string) error
	DropCategoryFn func(context.Context, int64, string) error
	AddItemFn      func(context.Context, int64, string) error
	DropItemFn     func(context.Context, int64, string) error
}

// Presets returns the configured preset list.
func (s PresetFacadeStub) Presets(ctx context.Context, userID int64) ([]model.Preset, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return []model.Preset{{ID: 1, UserID: userID, Name: "weekly"}}, nil
}

// CreatePreset delegates to the override or echoes the input.
func (s PresetFacadeStub) CreatePreset(ctx context.Context, userID int64, name, category string, items []model.PresetItem) (*model.Preset, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, name, category, items)
	}
	return &model.Preset{ID: 1, UserID: userID, Name: name, Category: category, Items: items}, nil
}

// UpdatePreset delegates to the override or echoes the input.
func (s PresetFacadeStub) UpdatePreset(ctx context.Context, userID, presetID int64, name, category string, items []model.PresetItem) (*model.Preset, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, presetID, name, category, items)
	}
	return &model.Preset{ID: presetID, UserID: userID, Name: name, Category: category, Items: items}, nil
}

// DeletePreset delegates to the override when provided.
func (s PresetFacadeStub) DeletePreset(ctx context.Context, userID, presetID int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, userID, presetID)
	}
	return nil
}

// AddCategory delegates to the override when provided.
func (s PresetFacadeStub) AddCategory(ctx context.Context, userID int64, name string) error {
	if s.AddCategoryFn != nil {
		return s.AddCategoryFn(ctx, userID, name)
	}
	return nil
}

// RemoveCategory delegates to the override when provided.
func (s PresetFacadeStub) RemoveCategory(ctx context.Context, userID int64, name string) error {
	if s.DropCategoryFn != nil {
		return s.DropCategoryFn(ctx, userID, name)
	}
	return nil
}

// AddCustomItem delegates to the override when provided.
func (s PresetFacadeStub) AddCustomItem(ctx context.Context, userID int64, name string) error {
	if s.AddItemFn != nil {
		return s.AddItemFn(ctx, userID, name)
	}
	return nil
}

// RemoveCustomItem delegates to the override when provided.
func (s PresetFacadeStub) RemoveCustomItem(ctx context.Context, userID int64, name string) error {
	if s.DropItemFn != nil {
		return s.DropItemFn(ctx, userID, name)
	}
	return nil
}

// PairlistFacadeStub aggregates facade dependencies for HTTP layer tests.
type PairlistFacadeStub struct {
	AuthFacadeStub
	ProfileFacadeStub
	PairingFacadeStub
	OrderFacadeStub
	PresetFacadeStub
}

// TrimHistoryCall stores information about TrimHistory invocations.
type TrimHistoryCall struct {
	UserID int64
	Role   model.Role
}

// RetentionFacadeStub mimics worker interactions with the application facade.
type RetentionFacadeStub struct {
	Candidates        [][]model.RetentionCandidate
	CandidatesFn      func(context.Context, int) ([]model.RetentionCandidate, error)
	TrimFn            func(context.Context, int64, model.Role) error
	Trims             []TrimHistoryCall
	mu                sync.Mutex
	candidatesCallCnt int32
}

// Lock exposes internal mutex for external synchronization.
func (s *RetentionFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *RetentionFacadeStub) Unlock() { s.mu.Unlock() }

// RetentionCandidates returns batches from configured queue.
func (s *RetentionFacadeStub) RetentionCandidates(ctx context.Context, limit int) ([]model.RetentionCandidate, error) {
	if s.CandidatesFn != nil {
		return s.CandidatesFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.candidatesCallCnt, 1)
	if int(call) <= len(s.Candidates) {
		return s.Candidates[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// TrimHistory records trim requests.
func (s *RetentionFacadeStub) TrimHistory(ctx context.Context, userID int64, role model.Role) error {
	if s.TrimFn != nil {
		return s.TrimFn(ctx, userID, role)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Trims = append(s.Trims, TrimHistoryCall{UserID: userID, Role: role})
	return nil
}
