package quiz

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	httperrors "github.com/econolearn/econolearn/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for the quiz subsystem.
type HTTPHandlers struct {
	catalog  *Catalog
	sampler  *Sampler
	ledger   *Ledger
	reviewer *Reviewer
	logger   zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for quiz endpoints.
func NewHTTPHandlers(catalog *Catalog, sampler *Sampler, ledger *Ledger, reviewer *Reviewer, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		catalog:  catalog,
		sampler:  sampler,
		ledger:   ledger,
		reviewer: reviewer,
		logger:   logger.With().Str("component", "quiz_http").Logger(),
	}
}

// SubmitRequest reports which sampled questions the user answered wrong.
type SubmitRequest struct {
	UserID           string   `json:"user_id"`
	WrongQuestionIDs []string `json:"wrong_question_ids"`
}

// ReviewSubmitRequest reports which review questions were answered correctly.
type ReviewSubmitRequest struct {
	UserID             string   `json:"user_id"`
	CorrectQuestionIDs []string `json:"correct_question_ids"`
}

// Collections handles GET /api/quiz/collections
func (h *HTTPHandlers) Collections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	h.respondJSON(w, http.StatusOK, h.catalog.List())
}

// Generate handles GET /api/quiz/generate/{collection_id}
func (h *HTTPHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	collectionID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/quiz/generate/"), "/")
	if collectionID == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidCollectionID, "Collection id required")
		return
	}

	result, err := h.sampler.Generate(r.Context(), collectionID)
	if err != nil {
		if errors.Is(err, ErrInvalidCollectionID) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidCollectionID, err.Error())
			return
		}
		h.logger.Error().Err(err).Str("collection_id", collectionID).Msg("quiz generation failed")
		httperrors.RespondInternalError(w, "Failed to generate quiz")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Submit handles POST /api/quiz/submit
func (h *HTTPHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.UserID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "user_id is required", "user_id")
		return
	}

	total, err := h.ledger.RecordWrong(r.Context(), req.UserID, req.WrongQuestionIDs)
	if err != nil {
		h.respondLedgerError(w, err, req.UserID)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":               true,
		"total_wrong_questions": total,
	})
}

// Review handles GET /api/quiz/review/{user_id}
func (h *HTTPHandlers) Review(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	userID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/quiz/review/"), "/")
	if userID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "user_id is required", "user_id")
		return
	}

	questions, err := h.reviewer.Build(r.Context(), userID)
	if err != nil {
		h.respondLedgerError(w, err, userID)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"total":     len(questions),
	})
}

// ReviewSubmit handles POST /api/quiz/review/submit
func (h *HTTPHandlers) ReviewSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req ReviewSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.UserID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "user_id is required", "user_id")
		return
	}

	remaining, err := h.ledger.ClearCorrect(r.Context(), req.UserID, req.CorrectQuestionIDs)
	if err != nil {
		h.respondLedgerError(w, err, req.UserID)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":                   true,
		"remaining_wrong_questions": remaining,
	})
}

// Stats handles GET /api/quiz/stats/{user_id}
func (h *HTTPHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	userID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/quiz/stats/"), "/")
	if userID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "user_id is required", "user_id")
		return
	}

	count, err := h.ledger.Count(r.Context(), userID)
	if err != nil {
		h.respondLedgerError(w, err, userID)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":               userID,
		"wrong_questions_count": count,
	})
}

func (h *HTTPHandlers) respondLedgerError(w http.ResponseWriter, err error, userID string) {
	if errors.Is(err, ErrUserNotFound) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeUserNotFound, "User not found")
		return
	}
	h.logger.Error().Err(err).Str("user_id", userID).Msg("ledger operation failed")
	httperrors.RespondInternalError(w, "Internal server error")
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
