package usecase

import (
	"strings"
	"unicode/utf8"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
)

// normalizeName trims surrounding whitespace and rejects empty or oversized
// names.
func normalizeName(name string, maxLen int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxLen {
		return "", domainErrors.ErrInvalidItems
	}
	return name, nil
}
