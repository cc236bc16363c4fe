package services

import (
	"testing"
	"time"

	"dolanlur/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.Auth {
	return config.Auth{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     10 * time.Minute,
		RefreshTTL:    4 * time.Hour,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	token, err := svc.CreateAccessToken(42, "bob@x.com")
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "bob@x.com", claims.Email)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	token, err := svc.CreateRefreshToken(7, "alice@x.com")
	require.NoError(t, err)

	claims, err := svc.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestAccessAndRefreshSecretsAreDistinct(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	refresh, err := svc.CreateRefreshToken(1, "a@x.com")
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredTokenIsDistinguished(t *testing.T) {
	svc := NewTokenService(testAuthConfig())
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := svc.CreateAccessToken(1, "a@x.com")
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestGarbageTokenIsInvalid(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	_, err := svc.ParseAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestWrongSecretIsInvalidNotExpired(t *testing.T) {
	svc := NewTokenService(testAuthConfig())
	other := NewTokenService(config.Auth{
		AccessSecret:  "different",
		RefreshSecret: "also-different",
		AccessTTL:     10 * time.Minute,
		RefreshTTL:    4 * time.Hour,
	})

	token, err := other.CreateAccessToken(1, "a@x.com")
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
