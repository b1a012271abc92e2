package test

import (
	"context"
	"slices"
	"time"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
	"github.com/m-orlov/pairlist/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users    map[string]*model.User
	ByID     map[int64]*model.User
	Requests []model.PairRequest
	Next     int64
	Err      error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Add seeds a user and returns it.
func (s *UserRepositoryStub) Add(user *model.User) *model.User {
	if user.ID == 0 {
		user.ID = s.Next
		s.Next++
	} else if user.ID >= s.Next {
		s.Next = user.ID + 1
	}
	s.Users[user.Login] = user
	s.ByID[user.ID] = user
	return user
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role, displayName string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{Login: login, PasswordHash: passwordHash, Role: role, DisplayName: displayName}
	return s.Add(user), nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateProfile applies non-nil fields to the stored user.
func (s *UserRepositoryStub) UpdateProfile(ctx context.Context, id int64, displayName, passwordHash *string) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if displayName != nil {
		user.DisplayName = *displayName
	}
	if passwordHash != nil {
		user.PasswordHash = *passwordHash
	}
	return user, nil
}

// SetPushEndpoint stores the push endpoint.
func (s *UserRepositoryStub) SetPushEndpoint(ctx context.Context, id int64, endpoint string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.PushEndpoint = endpoint
	return nil
}

// Delete removes the user and unlinks the partner.
func (s *UserRepositoryStub) Delete(ctx context.Context, id int64) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	for _, other := range s.ByID {
		if other.PartnerID != nil && *other.PartnerID == id {
			other.PartnerID = nil
		}
	}
	delete(s.Users, user.Login)
	delete(s.ByID, id)
	return nil
}

// CreatePairRequest records a pending request, idempotently.
func (s *UserRepositoryStub) CreatePairRequest(ctx context.Context, senderID, receiverID int64) error {
	if s.Err != nil {
		return s.Err
	}
	for _, r := range s.Requests {
		if r.SenderID == senderID && r.ReceiverID == receiverID {
			return nil
		}
	}
	sender := s.ByID[senderID]
	req := model.PairRequest{SenderID: senderID, ReceiverID: receiverID, RequestedAt: time.Now()}
	if sender != nil {
		req.Login = sender.Login
		req.DisplayName = sender.DisplayName
	}
	s.Requests = append(s.Requests, req)
	return nil
}

// DeletePairRequest drops the matching request.
func (s *UserRepositoryStub) DeletePairRequest(ctx context.Context, senderID, receiverID int64) error {
	s.Requests = slices.DeleteFunc(s.Requests, func(r model.PairRequest) bool {
		return r.SenderID == senderID && r.ReceiverID == receiverID
	})
	return s.Err
}

// ListPairRequests returns requests addressed to the receiver.
func (s *UserRepositoryStub) ListPairRequests(ctx context.Context, receiverID int64) ([]model.PairRequest, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.PairRequest
	for _, r := range s.Requests {
		if r.ReceiverID == receiverID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Link sets symmetric partner identifiers and drops the request.
func (s *UserRepositoryStub) Link(ctx context.Context, senderID, receiverID int64) error {
	sender, err := s.GetByID(ctx, senderID)
	if err != nil {
		return err
	}
	receiver, err := s.GetByID(ctx, receiverID)
	if err != nil {
		return err
	}
	sender.PartnerID = &receiver.ID
	receiver.PartnerID = &sender.ID
	return s.DeletePairRequest(ctx, senderID, receiverID)
}

// AddCustomItem appends the item unless present or over limit.
func (s *UserRepositoryStub) AddCustomItem(ctx context.Context, id int64, name string, limit int) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if slices.Contains(user.CustomItems, name) {
		return nil
	}
	if len(user.CustomItems) >= limit {
		return domainErrors.ErrLimitReached
	}
	user.CustomItems = append(user.CustomItems, name)
	return nil
}

// RemoveCustomItem drops the item.
func (s *UserRepositoryStub) RemoveCustomItem(ctx context.Context, id int64, name string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.CustomItems = slices.DeleteFunc(user.CustomItems, func(n string) bool { return n == name })
	return nil
}

// AddCategory appends the category unless present or over limit.
func (s *UserRepositoryStub) AddCategory(ctx context.Context, id int64, name string, limit int) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if slices.Contains(user.Categories, name) {
		return domainErrors.ErrAlreadyExists
	}
	if len(user.Categories) >= limit {
		return domainErrors.ErrLimitReached
	}
	user.Categories = append(user.Categories, name)
	return nil
}

// RemoveCategory drops the category.
func (s *UserRepositoryStub) RemoveCategory(ctx context.Context, id int64, name string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.Categories = slices.DeleteFunc(user.Categories, func(n string) bool { return n == name })
	return nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn          func(context.Context, int64, int64, map[string]int, int) (*model.Order, bool, error)
	GetByIDFn         func(context.Context, int64) (*model.Order, error)
	ListPendingFn     func(context.Context, int64, int) ([]model.Order, error)
	ListPendingSentFn func(context.Context, int64, int) ([]model.Order, error)
	ListCompletedFn   func(context.Context, int64, model.Role, int) ([]model.Order, error)
	CountPendingFn    func(context.Context, int64) (int, error)
	CompleteFn        func(context.Context, int64, int64, model.OrderStatus) (*model.Order, error)
	AppendFeedbackFn  func(context.Context, int64, model.ItemFeedback) error
	TrimCompletedFn   func(context.Context, int64, model.Role, int) (int64, error)
	CandidatesFn      func(context.Context, int, int) ([]model.RetentionCandidate, error)
	StatsFn           func(context.Context, int64, model.Role) (*model.OrderStats, error)
	DeleteByUserFn    func(context.Context, int64) error

	Orders    []model.Order
	Pending   map[int64]int
	Feedback  []model.ItemFeedback
	TrimCalls []TrimCall
	Next      int64
}

// TrimCall stores information about TrimCompleted invocations.
type TrimCall struct {
	UserID int64
	Role   model.Role
	Keep   int
}

// Create admits the order unless the receiver's pending count is at the limit.
func (s *OrderRepositoryStub) Create(ctx context.Context, senderID, receiverID int64, items map[string]int, pendingLimit int) (*model.Order, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, senderID, receiverID, items, pendingLimit)
	}
	if s.Pending == nil {
		s.Pending = make(map[int64]int)
	}
	if s.Pending[receiverID] >= pendingLimit {
		return nil, false, nil
	}
	s.Next++
	order := &model.Order{
		ID:         s.Next,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Items:      items,
		Status:     model.OrderStatusPending,
		CreatedAt:  time.Now(),
	}
	s.Pending[receiverID]++
	s.Orders = append(s.Orders, *order)
	return order, true, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListPending returns the receiver's pending orders, oldest first.
func (s *OrderRepositoryStub) ListPending(ctx context.Context, receiverID int64, limit int) ([]model.Order, error) {
	if s.ListPendingFn != nil {
		return s.ListPendingFn(ctx, receiverID, limit)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.ReceiverID == receiverID && o.Status == model.OrderStatusPending {
			out = append(out, o)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ListPendingSent returns the sender's pending orders.
func (s *OrderRepositoryStub) ListPendingSent(ctx context.Context, senderID int64, limit int) ([]model.Order, error) {
	if s.ListPendingSentFn != nil {
		return s.ListPendingSentFn(ctx, senderID, limit)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.SenderID == senderID && o.Status == model.OrderStatusPending {
			out = append(out, o)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ListCompleted returns resolved orders for the user in the given role.
func (s *OrderRepositoryStub) ListCompleted(ctx context.Context, userID int64, role model.Role, limit int) ([]model.Order, error) {
	if s.ListCompletedFn != nil {
		return s.ListCompletedFn(ctx, userID, role, limit)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.Status == model.OrderStatusPending {
			continue
		}
		if (role == model.RoleSender && o.SenderID == userID) ||
			(role == model.RoleReceiver && o.ReceiverID == userID) {
			out = append(out, o)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// CountPending returns the receiver's pending order count.
func (s *OrderRepositoryStub) CountPending(ctx context.Context, receiverID int64) (int, error) {
	if s.CountPendingFn != nil {
		return s.CountPendingFn(ctx, receiverID)
	}
	return s.Pending[receiverID], nil
}

// Complete resolves a pending order owned by the receiver.
func (s *OrderRepositoryStub) Complete(ctx context.Context, id, receiverID int64, status model.OrderStatus) (*model.Order, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, id, receiverID, status)
	}
	for i := range s.Orders {
		o := &s.Orders[i]
		if o.ID == id && o.ReceiverID == receiverID && o.Status == model.OrderStatusPending {
			o.Status = status
			now := time.Now()
			o.CompletedAt = &now
			if s.Pending != nil {
				s.Pending[receiverID]--
			}
			order := *o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// AppendFeedback records the feedback entry.
func (s *OrderRepositoryStub) AppendFeedback(ctx context.Context, id int64, entry model.ItemFeedback) error {
	if s.AppendFeedbackFn != nil {
		return s.AppendFeedbackFn(ctx, id, entry)
	}
	s.Feedback = append(s.Feedback, entry)
	return nil
}

// TrimCompleted records trim invocations.
func (s *OrderRepositoryStub) TrimCompleted(ctx context.Context, userID int64, role model.Role, keep int) (int64, error) {
	if s.TrimCompletedFn != nil {
		return s.TrimCompletedFn(ctx, userID, role, keep)
	}
	s.TrimCalls = append(s.TrimCalls, TrimCall{UserID: userID, Role: role, Keep: keep})
	return 0, nil
}

// RetentionCandidates returns configured candidates.
func (s *OrderRepositoryStub) RetentionCandidates(ctx context.Context, keep, limit int) ([]model.RetentionCandidate, error) {
	if s.CandidatesFn != nil {
		return s.CandidatesFn(ctx, keep, limit)
	}
	return nil, nil
}

// Stats counts resolved orders by status.
func (s *OrderRepositoryStub) Stats(ctx context.Context, userID int64, role model.Role) (*model.OrderStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, userID, role)
	}
	stats := &model.OrderStats{}
	for _, o := range s.Orders {
		if (role == model.RoleSender && o.SenderID != userID) ||
			(role == model.RoleReceiver && o.ReceiverID != userID) {
			continue
		}
		switch o.Status {
		case model.OrderStatusAcknowledged:
			stats.Acknowledged++
		case model.OrderStatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

// DeleteByUser removes every order the user participates in.
func (s *OrderRepositoryStub) DeleteByUser(ctx context.Context, userID int64) error {
	if s.DeleteByUserFn != nil {
		return s.DeleteByUserFn(ctx, userID)
	}
	s.Orders = slices.DeleteFunc(s.Orders, func(o model.Order) bool {
		return o.SenderID == userID || o.ReceiverID == userID
	})
	return nil
}

// PresetRepositoryStub stores presets in-memory for tests.
type PresetRepositoryStub struct {
	Presets []model.Preset
	Next    int64
	Err     error
}

// Create stores a preset unless the user hit the limit.
func (s *PresetRepositoryStub) Create(ctx context.Context, userID int64, name, category string, items []model.PresetItem, limit int) (*model.Preset, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	count := 0
	for _, p := range s.Presets {
		if p.UserID == userID {
			count++
		}
	}
	if count >= limit {
		return nil, domainErrors.ErrLimitReached
	}
	s.Next++
	preset := model.Preset{ID: s.Next, UserID: userID, Name: name, Category: category, Items: items}
	s.Presets = append(s.Presets, preset)
	return &preset, nil
}

// Update replaces the stored preset.
func (s *PresetRepositoryStub) Update(ctx context.Context, userID, presetID int64, name, category string, items []model.PresetItem) (*model.Preset, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Presets {
		p := &s.Presets[i]
		if p.ID == presetID && p.UserID == userID {
			p.Name, p.Category, p.Items = name, category, items
			preset := *p
			return &preset, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Delete removes the preset.
func (s *PresetRepositoryStub) Delete(ctx context.Context, userID, presetID int64) error {
	if s.Err != nil {
		return s.Err
	}
	before := len(s.Presets)
	s.Presets = slices.DeleteFunc(s.Presets, func(p model.Preset) bool {
		return p.ID == presetID && p.UserID == userID
	})
	if len(s.Presets) == before {
		return domainErrors.ErrNotFound
	}
	return nil
}

// ListByUser returns the user's presets.
func (s *PresetRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Preset, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Preset
	for _, p := range s.Presets {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
