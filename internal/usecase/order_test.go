package usecase

import (
	"context"
	"testing"

	"github.com/m-orlov/pairlist/internal/config"
	"github.com/m-orlov/pairlist/internal/domain/model"
	testhelpers "github.com/m-orlov/pairlist/internal/test"
)

func orderUseCaseFixture(repo *testhelpers.OrderRepositoryStub) *OrderUseCase {
	return NewOrderUseCase(repo, &config.Config{PendingLimit: 5, HistoryLimit: 10})
}

func TestOrderUseCasePendingReceived(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{
		ListPendingFn: func(ctx context.Context, receiverID int64, limit int) ([]model.Order, error) {
			if receiverID != 2 || limit != 5 {
				t.Fatalf("unexpected arguments: %d %d", receiverID, limit)
			}
			return []model.Order{{ID: 1, ReceiverID: 2, Status: model.OrderStatusPending}}, nil
		},
	}
	uc := orderUseCaseFixture(repo)

	orders, err := uc.PendingReceived(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != 1 {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}

func TestOrderUseCasePendingSent(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{
		ListPendingSentFn: func(ctx context.Context, senderID int64, limit int) ([]model.Order, error) {
			if senderID != 1 || limit != 10 {
				t.Fatalf("unexpected arguments: %d %d", senderID, limit)
			}
			return []model.Order{{ID: 7, SenderID: 1, Status: model.OrderStatusPending}}, nil
		},
	}
	uc := orderUseCaseFixture(repo)

	orders, err := uc.PendingSent(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != 7 {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}

func TestOrderUseCaseHistory(t *testing.T) {
	var gotRole model.Role
	repo := &testhelpers.OrderRepositoryStub{
		ListCompletedFn: func(ctx context.Context, userID int64, role model.Role, limit int) ([]model.Order, error) {
			gotRole = role
			if limit != 10 {
				t.Fatalf("unexpected limit: %d", limit)
			}
			return []model.Order{{ID: 3, Status: model.OrderStatusAcknowledged}}, nil
		},
	}
	uc := orderUseCaseFixture(repo)

	if _, err := uc.HistorySent(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRole != model.RoleSender {
		t.Fatalf("expected sender role, got %v", gotRole)
	}

	if _, err := uc.HistoryReceived(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRole != model.RoleReceiver {
		t.Fatalf("expected receiver role, got %v", gotRole)
	}
}

func TestOrderUseCaseStats(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{
		Orders: []model.Order{
			{ID: 1, SenderID: 1, ReceiverID: 2, Status: model.OrderStatusAcknowledged},
			{ID: 2, SenderID: 1, ReceiverID: 2, Status: model.OrderStatusRejected},
			{ID: 3, SenderID: 9, ReceiverID: 2, Status: model.OrderStatusAcknowledged},
		},
	}
	uc := orderUseCaseFixture(repo)

	stats, err := uc.Stats(context.Background(), 1, model.RoleSender)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Acknowledged != 1 || stats.Rejected != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	stats, err = uc.Stats(context.Background(), 2, model.RoleReceiver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Acknowledged != 2 || stats.Rejected != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestOrderUseCaseRetentionCandidates(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{
		CandidatesFn: func(ctx context.Context, keep, limit int) ([]model.RetentionCandidate, error) {
			if keep != 10 || limit != 50 {
				t.Fatalf("unexpected arguments: keep=%d limit=%d", keep, limit)
			}
			return []model.RetentionCandidate{{UserID: 1, Role: model.RoleSender}}, nil
		},
	}
	uc := orderUseCaseFixture(repo)

	candidates, err := uc.RetentionCandidates(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].UserID != 1 {
		t.Fatalf("unexpected candidates: %+v", candidates)
	}
}
