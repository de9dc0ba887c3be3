package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	pair, err := m.GeneratePair(userID, "musician")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := m.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "musician", claims.Role)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-a", 15*time.Minute, time.Hour)
	other := NewJWTManager("secret-b", 15*time.Minute, time.Hour)

	pair, err := m.GeneratePair(uuid.New(), "owner")
	require.NoError(t, err)

	_, err = other.Verify(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, time.Hour)

	pair, err := m.GeneratePair(uuid.New(), "musician")
	require.NoError(t, err)

	_, err = m.Verify(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute, time.Hour)
	_, err := m.Verify("not-a-token")
	assert.Error(t, err)
}

func TestHashRefreshToken_Deterministic(t *testing.T) {
	h1 := HashRefreshToken("raw-token")
	h2 := HashRefreshToken("raw-token")
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, HashRefreshToken("other"))
	assert.Len(t, h1, 64)
}
