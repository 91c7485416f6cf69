package quiz

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Ledger tracks each user's missed-question set. The store's add/remove are
// atomic set union and set difference, so both operations here are idempotent
// and concurrent submissions for the same user cannot lose updates.
type Ledger struct {
	users  LedgerStore
	logger zerolog.Logger
}

// NewLedger constructs the wrong-answer ledger over a user store.
func NewLedger(users LedgerStore, logger zerolog.Logger) *Ledger {
	return &Ledger{
		users:  users,
		logger: logger.With().Str("component", "wrong_answer_ledger").Logger(),
	}
}

// RecordWrong unions questionIDs into the user's missed-set and returns the
// new cardinality. Strings that are not valid question ids are dropped.
func (l *Ledger) RecordWrong(ctx context.Context, userID string, questionIDs []string) (int, error) {
	ids := parseQuestionIDs(questionIDs)
	total, err := l.users.AddWrongQuestions(ctx, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("record wrong answers: %w", err)
	}
	wrongRecorded.Add(float64(len(ids)))
	l.logger.Debug().Str("user_id", userID).Int("submitted", len(questionIDs)).Int("total", total).Msg("wrong answers recorded")
	return total, nil
}

// ClearCorrect removes questionIDs from the user's missed-set and returns the
// remaining cardinality. Removing an id that is not present is a no-op.
func (l *Ledger) ClearCorrect(ctx context.Context, userID string, questionIDs []string) (int, error) {
	ids := parseQuestionIDs(questionIDs)
	remaining, err := l.users.RemoveWrongQuestions(ctx, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("clear corrected answers: %w", err)
	}
	l.logger.Debug().Str("user_id", userID).Int("cleared", len(ids)).Int("remaining", remaining).Msg("corrected answers cleared")
	return remaining, nil
}

// Count returns the cardinality of the user's missed-set.
func (l *Ledger) Count(ctx context.Context, userID string) (int, error) {
	count, err := l.users.CountWrongQuestions(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count wrong answers: %w", err)
	}
	return count, nil
}

// parseQuestionIDs converts client-supplied id strings into question ids,
// silently dropping malformed entries and duplicates.
func parseQuestionIDs(raw []string) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
