// Package validate provides input validation for API request fields.
package validate

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// String validation errors
var (
	ErrEmpty         = errors.New("string is empty")
	ErrStringTooLong = errors.New("string is too long")
)

// StringConstraints defines validation constraints for a string field.
type StringConstraints struct {
	MaxLength  int  // Maximum length in runes (0 = no maximum)
	AllowEmpty bool // Whether empty strings are allowed
	TrimSpace  bool // Whether to trim whitespace before validation
}

// String validates s against the given constraints. Returns the validated
// (and optionally trimmed) string and an error if validation fails.
func String(s string, constraints StringConstraints) (string, error) {
	if constraints.TrimSpace {
		s = strings.TrimSpace(s)
	}

	if s == "" {
		if !constraints.AllowEmpty {
			return "", ErrEmpty
		}
		return s, nil
	}

	// Rune count, not byte count: titles and search terms are user text.
	if constraints.MaxLength > 0 && utf8.RuneCountInString(s) > constraints.MaxLength {
		return "", ErrStringTooLong
	}

	return s, nil
}
