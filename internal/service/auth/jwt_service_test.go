package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studydeck/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes: 15,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewJWTService(testAuthConfig())

	token, err := svc.GenerateToken(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateTokenMalformed(t *testing.T) {
	t.Parallel()
	svc := NewJWTService(testAuthConfig())

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	issuer := NewJWTService(testAuthConfig())
	token, err := issuer.GenerateToken(ctx)
	require.NoError(t, err)

	other := NewJWTService(config.AuthConfig{
		JWTSecret:            "ffffffffffffffffffffffffffffffff",
		TokenLifetimeMinutes: 15,
	})
	_, err = other.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := testAuthConfig()

	// Sign an already-expired token with the shared secret.
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "expired",
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = NewJWTService(cfg).ValidateToken(ctx, signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.ErrorIs(t, VerifyPassword(hash, "wrong"), ErrInvalidCredentials)
}
