package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrAlreadyRegistered  = errors.New("you are already registered as a volunteer")
	ErrNotFound           = errors.New("record not found")
	ErrUserNotFound       = errors.New("user not found")
	// ErrInternal wraps store failures. The wrapped detail is for logs only.
	ErrInternal = errors.New("internal error")
)

// ValidationError carries one message per offending input field, keyed by the
// field's wire name.
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
	return "validation failed: " + strings.Join(parts, "; ")
}

