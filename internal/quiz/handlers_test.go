package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestHandlers(users *fakeLedgerStore, questions *stubQuestionStore) *HTTPHandlers {
	logger := zerolog.Nop()
	return NewHTTPHandlers(
		NewCatalog(50, 30),
		NewSampler(questions, nil, SamplerOptions{}, logger),
		NewLedger(users, logger),
		NewReviewer(users, questions, logger),
		logger,
	)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCollectionsEndpoint(t *testing.T) {
	h := newTestHandlers(newFakeLedgerStore(), &stubQuestionStore{})

	rec := httptest.NewRecorder()
	h.Collections(rec, httptest.NewRequest(http.MethodGet, "/api/quiz/collections", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var collections []Collection
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collections))
	assert.NotEmpty(t, collections)
	assert.Equal(t, CollectionComprehensive, collections[0].ID)
}

func TestGenerateEndpoint(t *testing.T) {
	questions := &stubQuestionStore{pool: makeQuestions(5, 2, "금융")}
	h := newTestHandlers(newFakeLedgerStore(), questions)

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodGet, "/api/quiz/generate/level2-finance", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "level2-finance", body["collection_id"])
	assert.Equal(t, float64(5), body["total"])
}

func TestGenerateEndpointMalformedID(t *testing.T) {
	h := newTestHandlers(newFakeLedgerStore(), &stubQuestionStore{})

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodGet, "/api/quiz/generate/bogus", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_collection_id", decodeBody(t, rec)["error"])
}

func TestSubmitEndpoint(t *testing.T) {
	users := newFakeLedgerStore("u1")
	h := newTestHandlers(users, &stubQuestionStore{})

	payload, _ := json.Marshal(SubmitRequest{
		UserID:           "u1",
		WrongQuestionIDs: []string{uuid.NewString(), uuid.NewString()},
	})
	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/quiz/submit", bytes.NewReader(payload)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["total_wrong_questions"])
}

func TestSubmitEndpointMissingUserID(t *testing.T) {
	h := newTestHandlers(newFakeLedgerStore(), &stubQuestionStore{})

	payload := []byte(fmt.Sprintf(`{"wrong_question_ids":[%q]}`, uuid.NewString()))
	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/quiz/submit", bytes.NewReader(payload)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_field", decodeBody(t, rec)["error"])
}

func TestSubmitEndpointUnknownUser(t *testing.T) {
	h := newTestHandlers(newFakeLedgerStore(), &stubQuestionStore{})

	payload, _ := json.Marshal(SubmitRequest{UserID: "ghost"})
	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/quiz/submit", bytes.NewReader(payload)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user_not_found", decodeBody(t, rec)["error"])
}

func TestReviewEndpoint(t *testing.T) {
	questions := &stubQuestionStore{pool: makeQuestions(3, 1, "경제")}
	users := newFakeLedgerStore("u1")
	users.seed("u1", questions.pool[1].ID)
	h := newTestHandlers(users, questions)

	rec := httptest.NewRecorder()
	h.Review(rec, httptest.NewRequest(http.MethodGet, "/api/quiz/review/u1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["total"])
}

func TestReviewSubmitEndpoint(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	users := newFakeLedgerStore("u1")
	users.seed("u1", a, b)
	h := newTestHandlers(users, &stubQuestionStore{})

	payload, _ := json.Marshal(ReviewSubmitRequest{
		UserID:             "u1",
		CorrectQuestionIDs: []string{a.String()},
	})
	rec := httptest.NewRecorder()
	h.ReviewSubmit(rec, httptest.NewRequest(http.MethodPost, "/api/quiz/review/submit", bytes.NewReader(payload)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["remaining_wrong_questions"])
}

func TestStatsEndpoint(t *testing.T) {
	users := newFakeLedgerStore("u1")
	users.seed("u1", uuid.New(), uuid.New(), uuid.New())
	h := newTestHandlers(users, &stubQuestionStore{})

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/quiz/stats/u1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "u1", body["user_id"])
	assert.Equal(t, float64(3), body["wrong_questions_count"])
}

func TestStatsEndpointUnknownUser(t *testing.T) {
	h := newTestHandlers(newFakeLedgerStore(), &stubQuestionStore{})

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/quiz/stats/ghost", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
