package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studydeck/internal/config"
	"github.com/phrazzld/studydeck/internal/service/auth"
)

func newTestAuthHandler(t *testing.T) (*AuthHandler, auth.JWTService) {
	t.Helper()

	hash, err := auth.HashPassword("open sesame")
	require.NoError(t, err)

	cfg := config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		PasswordHash:         hash,
		TokenLifetimeMinutes: 15,
	}
	jwtService := auth.NewJWTService(cfg)
	return NewAuthHandler(jwtService, &cfg, slog.Default()), jwtService
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()
	handler, jwtService := newTestAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.Login(rec, jsonRequest(t, http.MethodPost, "/api/auth/login",
		map[string]string{"password": "open sesame"}))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)

	_, err := jwtService.ValidateToken(context.Background(), resp.Token)
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()
	handler, _ := newTestAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.Login(rec, jsonRequest(t, http.MethodPost, "/api/auth/login",
		map[string]string{"password": "wrong"}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginMissingPassword(t *testing.T) {
	t.Parallel()
	handler, _ := newTestAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.Login(rec, jsonRequest(t, http.MethodPost, "/api/auth/login",
		map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
