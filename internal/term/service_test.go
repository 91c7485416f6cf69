package term

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubTermStore struct {
	terms      []Term
	lastFilter Filter
	err        error
}

func (s *stubTermStore) List(_ context.Context, f Filter) ([]Term, error) {
	s.lastFilter = f
	if s.err != nil {
		return nil, s.err
	}
	return s.terms, nil
}

func TestListForwardsFilter(t *testing.T) {
	store := &stubTermStore{terms: []Term{
		{ID: uuid.New(), Term: "인플레이션", Definition: "물가가 지속적으로 오르는 현상", Category: "거시경제", Difficulty: 1},
	}}
	svc := NewService(store, zerolog.Nop())

	terms, err := svc.List(context.Background(), Filter{Category: "거시경제", Difficulty: 1})

	assert.NoError(t, err)
	assert.Len(t, terms, 1)
	assert.Equal(t, Filter{Category: "거시경제", Difficulty: 1}, store.lastFilter)
}

func TestListStoreErrorWrapped(t *testing.T) {
	store := &stubTermStore{err: assert.AnError}
	svc := NewService(store, zerolog.Nop())

	_, err := svc.List(context.Background(), Filter{Difficulty: DifficultyAny})
	assert.ErrorIs(t, err, assert.AnError)
}
