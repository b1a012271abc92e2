package relay

import (
	"context"
	"errors"
	"testing"

	testhelpers "github.com/m-orlov/pairlist/internal/test"
)

func TestAdmissionCanAdmit(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{Pending: map[int64]int{7: 4}}
	admission := NewAdmission(orders, 5)

	ok, err := admission.CanAdmit(context.Background(), 7)
	if err != nil {
		t.Fatalf("can admit: %v", err)
	}
	if !ok {
		t.Fatal("expected admission below the limit")
	}

	orders.Pending[7] = 5
	ok, err = admission.CanAdmit(context.Background(), 7)
	if err != nil {
		t.Fatalf("can admit: %v", err)
	}
	if ok {
		t.Fatal("expected admission refused at the limit")
	}
}

func TestAdmissionCountError(t *testing.T) {
	wantErr := errors.New("db down")
	orders := &testhelpers.OrderRepositoryStub{
		CountPendingFn: func(context.Context, int64) (int, error) { return 0, wantErr },
	}
	admission := NewAdmission(orders, 5)

	if _, err := admission.CanAdmit(context.Background(), 7); !errors.Is(err, wantErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestAdmissionDefaultLimit(t *testing.T) {
	admission := NewAdmission(&testhelpers.OrderRepositoryStub{}, 0)
	if admission.Limit() != 5 {
		t.Fatalf("expected default limit 5, got %d", admission.Limit())
	}
}
