package usecase

import (
	"strings"
	"testing"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "milk", "milk", false},
		{"trimmed", "  milk  ", "milk", false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"at limit", strings.Repeat("x", 64), strings.Repeat("x", 64), false},
		{"over limit", strings.Repeat("x", 65), "", true},
		{"multibyte at limit", strings.Repeat("я", 64), strings.Repeat("я", 64), false},
	}

	for _, tc := range cases {
		got, err := normalizeName(tc.input, 64)
		if tc.wantErr {
			if err != domainErrors.ErrInvalidItems {
				t.Fatalf("%s: expected ErrInvalidItems, got %v", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
