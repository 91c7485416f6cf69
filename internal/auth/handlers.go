package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	httperrors "github.com/econolearn/econolearn/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for authentication and profiles.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for auth endpoints.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger.With().Str("component", "auth_http").Logger(),
	}
}

// Register handles POST /api/auth/register
func (h *HTTPHandlers) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if field, ok := missingRegisterField(req); !ok {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, field+" is required", field)
		return
	}
	if !strings.Contains(req.Email, "@") {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "email is not valid", "email")
		return
	}

	profile, tokens, err := h.svc.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserIDTaken), errors.Is(err, ErrEmailTaken):
			httperrors.RespondBadRequest(w, httperrors.ErrCodeAlreadyExists, err.Error())
		case errors.Is(err, ErrPasswordTooShort):
			httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, err.Error(), "password")
		default:
			h.logger.Error().Err(err).Msg("registration failed")
			httperrors.RespondInternalError(w, "Registration failed")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"user_id":       profile.UserID,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

// Login handles POST /api/auth/login
func (h *HTTPHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.UserID == "" || req.Password == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "user_id and password are required", "user_id")
		return
	}

	profile, tokens, err := h.svc.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httperrors.RespondUnauthorized(w, httperrors.ErrCodeLoginFailed, "Invalid user id or password")
			return
		}
		h.logger.Error().Err(err).Msg("login failed")
		httperrors.RespondInternalError(w, "Login failed")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":       profile.UserID,
		"name":          profile.Name,
		"know_level":    profile.KnowLevel,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

// GetMe handles GET /api/users/me (requires bearer token).
func (h *HTTPHandlers) GetMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	profile, err := h.svc.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeUserNotFound, "User not found")
			return
		}
		h.logger.Error().Err(err).Str("user_id", claims.UserID).Msg("profile lookup failed")
		httperrors.RespondInternalError(w, "Failed to load profile")
		return
	}

	h.respondJSON(w, http.StatusOK, profile)
}

func missingRegisterField(req RegisterRequest) (string, bool) {
	switch {
	case req.UserID == "":
		return "user_id", false
	case req.Password == "":
		return "password", false
	case req.Name == "":
		return "name", false
	case req.Email == "":
		return "email", false
	}
	return "", true
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
