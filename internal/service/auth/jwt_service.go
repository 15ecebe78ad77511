// Package auth provides the single-user authentication pieces: bcrypt
// password verification and JWT issue/validation for the HTTP layer.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/studydeck/internal/config"
)

// Common authentication errors.
var (
	// ErrInvalidToken indicates the token is malformed or its signature
	// does not verify.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token was valid but has expired.
	ErrExpiredToken = errors.New("token expired")
)

// JWTService defines operations for managing JWT authentication tokens.
// This deployment is single-user, so tokens carry no subject identity
// beyond a unique token ID.
type JWTService interface {
	// GenerateToken creates a signed JWT access token.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the JWT claims structure for issued tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// jwtService implements JWTService with HMAC-SHA256 signing.
type jwtService struct {
	secret   []byte
	lifetime time.Duration
}

// NewJWTService creates a JWTService from the auth configuration.
func NewJWTService(cfg config.AuthConfig) JWTService {
	return &jwtService{
		secret:   []byte(cfg.JWTSecret),
		lifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
	}
}

// GenerateToken implements JWTService.GenerateToken.
func (s *jwtService) GenerateToken(ctx context.Context) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// ValidateToken implements JWTService.ValidateToken.
func (s *jwtService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
