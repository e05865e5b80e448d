package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yourorg/rentledger/internal/observability/metrics"
	"github.com/yourorg/rentledger/internal/security/audit"
	"github.com/yourorg/rentledger/internal/security/auth"
	"github.com/yourorg/rentledger/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService  *service.AuthService
	tokenManager *auth.TokenManager
	tokenTTL     time.Duration
	audit        *audit.Logger
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, tokenManager *auth.TokenManager, tokenTTL time.Duration, auditLog *audit.Logger, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		authService:  authService,
		tokenManager: tokenManager,
		tokenTTL:     tokenTTL,
		audit:        auditLog,
		logger:       logger,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries the issued token back to the caller
type TokenResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expiresIn"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateEmailRequest represents a contact email update
type UpdateEmailRequest struct {
	Email string `json:"email"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode register request",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Password, req.Email, req.Role)
	if err != nil {
		metrics.ObserveRegistration("failure")
		h.audit.LogRegistration(r.Context(), req.Username, "failure", err.Error())
		if errors.Is(err, service.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "username already exists")
			return
		}
		h.logger.Error("registration failed",
			slog.String("username", req.Username),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics.ObserveRegistration("success")
	h.audit.LogRegistration(r.Context(), user.Username, "success", "account and portfolio database created")
	h.logger.Info("user registered",
		slog.String("username", user.Username),
		slog.String("role", user.Role),
	)

	writeJSON(w, http.StatusCreated, map[string]string{
		"username": user.Username,
		"role":     user.Role,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode login request",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		metrics.ObserveLogin("failure")
		h.audit.LogLogin(r.Context(), req.Username, "failure", "invalid credentials")
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := h.tokenManager.GenerateToken(user.Username, user.Role, h.tokenTTL)
	if err != nil {
		h.logger.Error("failed to generate token",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	metrics.ObserveLogin("success")
	h.audit.LogLogin(r.Context(), user.Username, "success", "")

	writeJSON(w, http.StatusOK, TokenResponse{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresIn: int(h.tokenTTL.Seconds()),
	})
}

// ChangePassword handles POST /api/account/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := requestClaims(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "oldPassword and newPassword are required")
		return
	}

	if err := h.authService.ChangePassword(claims.Username, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid current password")
			return
		}
		h.logger.Error("password change failed",
			slog.String("username", claims.Username),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to change password")
		return
	}

	h.logger.Info("password changed", slog.String("username", claims.Username))
	writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

// UpdateEmail handles PUT /api/account/email
func (h *AuthHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	claims := requestClaims(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req UpdateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.authService.UpdateEmail(claims.Username, req.Email); err != nil {
		h.logger.Error("email update failed",
			slog.String("username", claims.Username),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to update email")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "email updated"})
}
