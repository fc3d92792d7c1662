package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestResolveRejectsMalformedToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	_, err := m.Resolve("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveRejectsWrongSecret(t *testing.T) {
	issued, err := NewTokenManager("secret-a", time.Hour).Issue(7)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Resolve(issued)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Issue(7)
	require.NoError(t, err)

	_, err = m.Resolve(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword("hunter22", hash))
	assert.False(t, CheckPassword("hunter23", hash))
}
