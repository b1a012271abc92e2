package model

import "testing"

func TestRoleValid(t *testing.T) {
	cases := []struct {
		role  Role
		valid bool
	}{
		{RoleSender, true},
		{RoleReceiver, true},
		{Role(""), false},
		{Role("admin"), false},
	}

	for _, tc := range cases {
		if got := tc.role.Valid(); got != tc.valid {
			t.Fatalf("role %q: expected valid=%v, got %v", tc.role, tc.valid, got)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	cases := []struct {
		status   OrderStatus
		terminal bool
	}{
		{OrderStatusPending, false},
		{OrderStatusAcknowledged, true},
		{OrderStatusRejected, true},
		{OrderStatus("other"), false},
	}

	for _, tc := range cases {
		if got := tc.status.Terminal(); got != tc.terminal {
			t.Fatalf("status %q: expected terminal=%v, got %v", tc.status, tc.terminal, got)
		}
	}
}

func TestStatusValues(t *testing.T) {
	if string(OrderStatusPending) != "pending" ||
		string(OrderStatusAcknowledged) != "acknowledged" ||
		string(OrderStatusRejected) != "rejected" {
		t.Fatal("unexpected order status wire values")
	}
	if string(FeedbackAcknowledged) != "acknowledged" || string(FeedbackRejected) != "rejected" {
		t.Fatal("unexpected feedback status wire values")
	}
}
