package term

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/econolearn/econolearn/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for the term dictionary.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for dictionary endpoints.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger.With().Str("component", "term_http").Logger(),
	}
}

// ListTerms handles GET /api/dictionary/terms?category=&difficulty=
func (h *HTTPHandlers) ListTerms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	filter := Filter{
		Category:   r.URL.Query().Get("category"),
		Difficulty: DifficultyAny,
	}
	if raw := r.URL.Query().Get("difficulty"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "difficulty must be a non-negative integer", "difficulty")
			return
		}
		filter.Difficulty = parsed
	}

	terms, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("term listing failed")
		httperrors.RespondInternalError(w, "Failed to list terms")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(terms); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
