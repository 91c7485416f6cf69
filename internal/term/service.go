package term

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Term is one dictionary entry. Difficulty runs 0 (basic) through 4 (expert).
type Term struct {
	ID         uuid.UUID `json:"id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	Category   string    `json:"category"`
	Difficulty int       `json:"difficulty"`
}

// Filter narrows a dictionary listing. DifficultyAny leaves difficulty
// unconstrained (0 is a real difficulty for terms).
const DifficultyAny = -1

type Filter struct {
	Category   string
	Difficulty int
}

// Store provides read access to the seeded term dictionary.
type Store interface {
	List(ctx context.Context, f Filter) ([]Term, error)
}

// Service serves dictionary lookups.
type Service struct {
	store  Store
	logger zerolog.Logger
}

// NewService constructs the dictionary service.
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "term_service").Logger(),
	}
}

// List returns terms matching the filter, in stored order.
func (s *Service) List(ctx context.Context, f Filter) ([]Term, error) {
	terms, err := s.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}
