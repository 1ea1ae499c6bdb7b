package contact

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound covers both a missing contact and one owned by somebody else.
	ErrNotFound      = errors.New("contact not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrInvalidWindow = errors.New("days must be between 1 and 365")
)

// ValidationError carries a message per rejected field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}

	return "invalid contact: " + strings.Join(parts, "; ")
}
