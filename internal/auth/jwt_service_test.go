package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, issued, err := svc.GenerateToken("user-1", "a@test.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@test.com", claims.Email)
	assert.Equal(t, issued.ID, claims.ID)

	p := claims.Principal()
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, issued.ID, p.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), p.ExpiresAt, 5*time.Second)
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	_, a, err := svc.GenerateToken("user-1", "a@test.com")
	require.NoError(t, err)
	_, b, err := svc.GenerateToken("user-1", "a@test.com")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestJWTService_ValidateToken_Rejects(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	good, _, err := svc.GenerateToken("user-1", "a@test.com")
	require.NoError(t, err)

	expired := NewJWTService("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.GenerateToken("user-1", "a@test.com")
	require.NoError(t, err)

	otherKey, _, err := NewJWTService("other", time.Hour).GenerateToken("user-1", "a@test.com")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "user-1",
		"jti":     "x",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"jti":     "x",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed", token: "not-a-token"},
		{name: "tampered", token: good + "x"},
		{name: "expired", token: expiredToken},
		{name: "wrong key", token: otherKey},
		{name: "alg none", token: none},
		{name: "missing expiry", token: noExpiry},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestNewJWTService_DefaultTTL(t *testing.T) {
	svc := NewJWTService("s", 0)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, claims, err := svc.GenerateToken("u-1", "a@test.com")
	require.NoError(t, err)
	assert.Equal(t, now.Add(DefaultTokenTTL), claims.ExpiresAt.Time)
}
