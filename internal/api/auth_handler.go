package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/studydeck/internal/api/shared"
	"github.com/phrazzld/studydeck/internal/config"
	"github.com/phrazzld/studydeck/internal/service/auth"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	jwtService   auth.JWTService
	passwordHash string
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(jwtService auth.JWTService, cfg *config.AuthConfig, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		jwtService:   jwtService,
		passwordHash: cfg.PasswordHash,
		logger:       logger.With(slog.String("component", "auth_handler")),
	}
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /auth/login requests. It verifies the study password
// against the configured bcrypt hash and issues a JWT on success.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := auth.VerifyPassword(h.passwordHash, req.Password); err != nil {
		h.logger.Warn("failed login attempt", slog.String("remote_addr", r.RemoteAddr))
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to issue token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{Token: token})
}
