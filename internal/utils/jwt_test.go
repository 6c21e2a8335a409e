package utils

import (
	"testing"
	"time"

	"catatuang/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	user := &models.User{ID: 7, Email: "demo@catatuang.com", TokenVersion: 3}

	token, expiresAt, err := m.GenerateToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "demo@catatuang.com", claims.Email)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_Rejects(t *testing.T) {
	user := &models.User{ID: 7, Email: "demo@catatuang.com", TokenVersion: 1}
	valid, _, err := NewTokenManager("secret", time.Hour).GenerateToken(user)
	require.NoError(t, err)

	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.GenerateToken(user)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, models.UserClaims{UserID: 7}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", valid},
		{"expired", old},
		{"unsigned", none},
		{"garbage", "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret := "secret"
			if tt.name == "wrong secret" {
				secret = "other"
			}
			_, err := NewTokenManager(secret, time.Hour).ParseToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenManager_RequiresSecret(t *testing.T) {
	_, _, err := NewTokenManager("", time.Hour).GenerateToken(&models.User{ID: 1})
	assert.Error(t, err)
}
