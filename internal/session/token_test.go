package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("super-secret"), time.Hour)
	identity := Identity{UserID: 7, Username: "alice", Email: "a@x.com"}

	s, err := m.Issue(identity)
	require.NoError(t, err)
	assert.Equal(t, identity, s.Identity)
	assert.WithinDuration(t, s.IssuedAt.Add(time.Hour), s.ExpiresAt, time.Second)

	claims, err := m.Parse(s.Token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity())
	assert.Equal(t, "7", claims.Subject)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("secret"), time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	s, err := m.Issue(Identity{UserID: 1, Username: "u1"})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(s.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	s, err := NewTokenManager([]byte("right-secret"), time.Hour).Issue(Identity{UserID: 2})
	require.NoError(t, err)

	_, err = NewTokenManager([]byte("wrong-secret"), time.Hour).Parse(s.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager([]byte("k"), time.Hour).Parse("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNeedsRenewal(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("secret"), 10*time.Hour)
	issued := time.Now()
	m.now = func() time.Time { return issued }

	s, err := m.Issue(Identity{UserID: 3})
	require.NoError(t, err)
	claims, err := m.Parse(s.Token)
	require.NoError(t, err)

	assert.False(t, m.NeedsRenewal(claims))

	m.now = func() time.Time { return issued.Add(6 * time.Hour) }
	assert.True(t, m.NeedsRenewal(claims))
}
