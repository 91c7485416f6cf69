package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCollectionID signals a collection id the sampler cannot parse.
	ErrInvalidCollectionID = errors.New("invalid collection id")
	// ErrUserNotFound signals that a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Question is one stored quiz question as delivered to clients. The client
// scores locally, so the answer index and explanation ship with it.
type Question struct {
	ID          uuid.UUID `json:"id"`
	Question    string    `json:"question"`
	Options     []string  `json:"options"`
	AnswerIndex int       `json:"answer_index"`
	Explanation string    `json:"explanation"`
	Difficulty  int       `json:"difficulty"`
	Category    string    `json:"category"`
}

// Collection describes one selectable quiz configuration.
type Collection struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Difficulty int    `json:"difficulty"`
	Category   string `json:"category,omitempty"`
	Size       int    `json:"question_count"`
}

// Quiz is an ephemeral sampled instance handed to the client. Never persisted.
type Quiz struct {
	CollectionID string     `json:"collection_id"`
	Questions    []Question `json:"questions"`
	Total        int        `json:"total"`
}

// Filter selects a question population. Zero values mean "no constraint".
type Filter struct {
	Difficulty int
	Category   string
}

// QuestionStore provides read access to the seeded question bank.
type QuestionStore interface {
	ListByFilter(ctx context.Context, f Filter) ([]Question, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Question, error)
}

// LedgerStore persists per-user missed-question sets. Add and Remove must be
// atomic set union / set difference against the stored set, returning the new
// cardinality. Both return ErrUserNotFound for unknown users.
type LedgerStore interface {
	AddWrongQuestions(ctx context.Context, userID string, ids []uuid.UUID) (int, error)
	RemoveWrongQuestions(ctx context.Context, userID string, ids []uuid.UUID) (int, error)
	GetWrongQuestions(ctx context.Context, userID string) ([]uuid.UUID, error)
	CountWrongQuestions(ctx context.Context, userID string) (int, error)
}

// PoolCache caches filtered question pools (implemented by the Redis-backed
// Cache). A (nil, nil) Get is a miss.
type PoolCache interface {
	Get(ctx context.Context, f Filter) ([]Question, error)
	Set(ctx context.Context, f Filter, pool []Question) error
}
