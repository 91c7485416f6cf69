package quiz

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Reviewer rebuilds a user's missed questions for re-presentation.
type Reviewer struct {
	users     LedgerStore
	questions QuestionStore
	logger    zerolog.Logger
}

// NewReviewer constructs a review session builder.
func NewReviewer(users LedgerStore, questions QuestionStore, logger zerolog.Logger) *Reviewer {
	return &Reviewer{
		users:     users,
		questions: questions,
		logger:    logger.With().Str("component", "review_builder").Logger(),
	}
}

// Build fetches the question records behind the user's missed-set, in
// arbitrary order. Ids that no longer resolve to a stored question (deleted
// or reseeded since they were recorded) are dropped silently. An empty
// missed-set yields an empty session, not an error.
func (r *Reviewer) Build(ctx context.Context, userID string) ([]Question, error) {
	ids, err := r.users.GetWrongQuestions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load missed-question set: %w", err)
	}
	if len(ids) == 0 {
		return []Question{}, nil
	}

	questions, err := r.questions.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch review questions: %w", err)
	}

	if dropped := len(ids) - len(questions); dropped > 0 {
		r.logger.Debug().Str("user_id", userID).Int("dropped", dropped).Msg("missed questions no longer in bank")
	}
	reviewsBuilt.Inc()
	return questions, nil
}
