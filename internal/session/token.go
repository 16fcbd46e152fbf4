package session

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uint64 `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Identity returns the identity embedded in the claims.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Username: c.Username, Email: c.Email}
}

// Session is a freshly minted token together with its claims.
type Session struct {
	Token     string
	Identity  Identity
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager signs and parses HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. ttl is the absolute lifetime of each token.
func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl, now: time.Now}
}

// TTL returns the lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue mints a token for the identity that expires ttl from now.
func (m *TokenManager) Issue(identity Identity) (*Session, error) {
	issuedAt := m.now().UTC()
	expiresAt := issuedAt.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(identity.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:   identity.UserID,
		Username: identity.Username,
		Email:    identity.Email,
	})

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     tokenString,
		Identity:  identity,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse validates signature and expiry and returns the claims.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// NeedsRenewal reports whether a token has passed half of its lifetime.
func (m *TokenManager) NeedsRenewal(claims *Claims) bool {
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return false
	}
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	return m.now().After(claims.IssuedAt.Add(lifetime / 2))
}
