package auth

import (
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/utils"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, utils.NewMockClock(issuedAt))

	token, err := manager.GenerateAccessToken("user-uid-1")
	require.NoError(t, err)

	uid, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-uid-1", uid)
}

func TestJWTManager_Expired(t *testing.T) {
	clock := utils.NewMockClock(issuedAt)
	manager := NewJWTManager("secret", time.Hour, clock)
	token, err := manager.GenerateAccessToken("user-uid-1")
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = manager.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	clock := utils.NewMockClock(issuedAt)
	token, err := NewJWTManager("secret", time.Hour, clock).GenerateAccessToken("user-uid-1")
	require.NoError(t, err)

	_, err = NewJWTManager("other-secret", time.Hour, clock).ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_Garbage(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, utils.NewMockClock(issuedAt))

	_, err := manager.ValidateAccessToken("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_RejectsUnsignedAlgorithm(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, utils.NewMockClock(issuedAt))
	claims := &AccessTokenClaims{
		UserUid:        "user-uid-1",
		StandardClaims: jwt.StandardClaims{ExpiresAt: issuedAt.Add(time.Hour).Unix()},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTManager_DefaultTTL(t *testing.T) {
	manager := NewJWTManager("secret", 0, utils.NewMockClock(issuedAt))

	assert.Equal(t, defaultTokenTTL, manager.ttl)
}
