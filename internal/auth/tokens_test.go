package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue("terenski-telefon")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	device, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "terenski-telefon", device)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue("naprava")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	token, err := tm.Issue("naprava")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	_, err := tm.Verify("ni-zeton")
	assert.Error(t, err)
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("servis123")
	require.NoError(t, err)
	assert.NotEqual(t, "servis123", hash)

	assert.NoError(t, CheckPassword(hash, "servis123"))
	assert.Error(t, CheckPassword(hash, "napacno"))
}
