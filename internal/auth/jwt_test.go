package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"bookpress/internal/core/domain"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	id := uuid.New()

	token, err := m.Issue(id, domain.RoleAdmin)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, claims.Role)

	got, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	token, err := m.Issue(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	_, err = NewTokenManager("test-secret", time.Minute).Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("test-secret", time.Hour).Parse("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestHasherRoundTrip(t *testing.T) {
	h := NewHasher(bcryptTestCost)
	hash, err := h.Hash("hunter22")
	require.NoError(t, err)
	require.True(t, h.Compare(hash, "hunter22"))
	require.False(t, h.Compare(hash, "hunter23"))
}

// bcryptTestCost keeps hashing fast in tests.
const bcryptTestCost = 4
