// Package session issues and validates the signed session tokens that carry a
// caller's identity between requests.
package session

import "errors"

var (
	// ErrUnauthenticated is returned when an operation requires a signed-in caller.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidToken covers malformed, wrongly signed, and expired tokens.
	ErrInvalidToken = errors.New("invalid session token")
)

// Identity is the set of immutable claims carried by a session.
// The zero value is the anonymous caller.
type Identity struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Anonymous is the identity of a caller without a valid session.
var Anonymous = Identity{}

// IsAuthenticated reports whether the identity belongs to a signed-in user.
func (i Identity) IsAuthenticated() bool {
	return i.UserID != 0
}

// Require returns ErrUnauthenticated for the anonymous identity.
func (i Identity) Require() error {
	if !i.IsAuthenticated() {
		return ErrUnauthenticated
	}
	return nil
}
