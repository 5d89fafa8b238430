package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-test-secret-with-32-bytes!"

func TestAccessToken_RoundTrip(t *testing.T) {
	payload := Payload{ID: "u1", Email: "u1@example.com", Role: "LEADER"}

	token, err := GenerateAccessToken(payload, testSecret, time.Minute)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, payload, claims.Payload)
	assert.Equal(t, "u1", claims.Subject)
}

func TestAccessToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(Payload{ID: "u1"}, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(Payload{ID: "u1"}, testSecret, time.Minute)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ValidateAccessToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshToken_NotAcceptedAsAccessToken(t *testing.T) {
	token, err := GenerateRefreshToken("u1", "tid", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "tid", claims.TokenID)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	access, err := GenerateAccessToken(Payload{ID: "u1"}, testSecret, time.Minute)
	require.NoError(t, err)
	_, err = ValidateRefreshToken(access, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
