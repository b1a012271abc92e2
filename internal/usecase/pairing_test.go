package usecase

import (
	"context"
	"testing"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
	"github.com/m-orlov/pairlist/internal/domain/model"
	testhelpers "github.com/m-orlov/pairlist/internal/test"
)

func pairingFixture() (*PairingUseCase, *testhelpers.UserRepositoryStub) {
	repo := testhelpers.NewUserRepositoryStub()
	repo.Add(&model.User{Login: "alice", Role: model.RoleSender, DisplayName: "Alice"})
	repo.Add(&model.User{Login: "bob", Role: model.RoleReceiver, DisplayName: "Bob"})
	return NewPairingUseCase(repo), repo
}

func TestPairingSearchReceiver(t *testing.T) {
	uc, repo := pairingFixture()
	ctx := context.Background()

	candidate, err := uc.SearchReceiver(ctx, 1, " bob ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate.Login != "bob" {
		t.Fatalf("unexpected candidate: %+v", candidate)
	}

	// receivers cannot search
	if _, err := uc.SearchReceiver(ctx, 2, "alice"); err != domainErrors.ErrForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// a sender is not a valid pairing target
	repo.Add(&model.User{Login: "carol", Role: model.RoleSender})
	if _, err := uc.SearchReceiver(ctx, 1, "carol"); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := uc.SearchReceiver(ctx, 1, "nobody"); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.SearchReceiver(ctx, 99, "bob"); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found for unknown sender, got %v", err)
	}
}

func TestPairingRequest(t *testing.T) {
	uc, repo := pairingFixture()
	ctx := context.Background()

	sender, err := uc.Request(ctx, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.Login != "alice" {
		t.Fatalf("unexpected sender: %+v", sender)
	}
	if len(repo.Requests) != 1 || repo.Requests[0].SenderID != 1 || repo.Requests[0].ReceiverID != 2 {
		t.Fatalf("request not recorded: %+v", repo.Requests)
	}

	// repeated requests stay idempotent
	if _, err := uc.Request(ctx, 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.Requests) != 1 {
		t.Fatalf("expected a single request, got %d", len(repo.Requests))
	}

	if _, err := uc.Request(ctx, 2, 1); err != domainErrors.ErrForbidden {
		t.Fatalf("expected forbidden for receiver-initiated request, got %v", err)
	}

	repo.Add(&model.User{Login: "carol", Role: model.RoleSender})
	if _, err := uc.Request(ctx, 1, 3); err != domainErrors.ErrInvalidRole {
		t.Fatalf("expected invalid role for sender target, got %v", err)
	}

	if _, err := uc.Request(ctx, 1, 99); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPairingAccept(t *testing.T) {
	uc, repo := pairingFixture()
	ctx := context.Background()

	if _, err := uc.Request(ctx, 1, 2); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	receiver, err := uc.Accept(ctx, 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receiver.Login != "bob" {
		t.Fatalf("unexpected receiver: %+v", receiver)
	}
	if repo.ByID[1].PartnerID == nil || *repo.ByID[1].PartnerID != 2 {
		t.Fatalf("sender not linked: %+v", repo.ByID[1])
	}
	if repo.ByID[2].PartnerID == nil || *repo.ByID[2].PartnerID != 1 {
		t.Fatalf("receiver not linked: %+v", repo.ByID[2])
	}
	if len(repo.Requests) != 0 {
		t.Fatalf("request not consumed: %+v", repo.Requests)
	}

	// senders cannot accept
	if _, err := uc.Accept(ctx, 1, 2); err != domainErrors.ErrForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	repo.Add(&model.User{Login: "dave", Role: model.RoleReceiver})
	if _, err := uc.Accept(ctx, 2, 3); err != domainErrors.ErrInvalidRole {
		t.Fatalf("expected invalid role for receiver requester, got %v", err)
	}
}

func TestPairingReject(t *testing.T) {
	uc, repo := pairingFixture()
	ctx := context.Background()

	if _, err := uc.Request(ctx, 1, 2); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	receiver, err := uc.Reject(ctx, 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receiver.Login != "bob" {
		t.Fatalf("unexpected receiver: %+v", receiver)
	}
	if len(repo.Requests) != 0 {
		t.Fatalf("request not dropped: %+v", repo.Requests)
	}
	if repo.ByID[1].PartnerID != nil || repo.ByID[2].PartnerID != nil {
		t.Fatal("reject must not link users")
	}

	if _, err := uc.Reject(ctx, 1, 2); err != domainErrors.ErrForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestPairingRequests(t *testing.T) {
	uc, _ := pairingFixture()
	ctx := context.Background()

	if _, err := uc.Request(ctx, 1, 2); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	requests, err := uc.Requests(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requests) != 1 || requests[0].Login != "alice" {
		t.Fatalf("unexpected requests: %+v", requests)
	}

	requests, err = uc.Requests(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requests) != 0 {
		t.Fatalf("expected no requests for sender, got %+v", requests)
	}
}
