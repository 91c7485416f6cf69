package quiz

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubQuestionStore struct {
	pool       []Question
	listCalls  int
	lastFilter Filter
	listErr    error
}

func (s *stubQuestionStore) ListByFilter(_ context.Context, f Filter) ([]Question, error) {
	s.listCalls++
	s.lastFilter = f
	if s.listErr != nil {
		return nil, s.listErr
	}
	matched := make([]Question, 0)
	for _, q := range s.pool {
		if f.Difficulty != 0 && q.Difficulty != f.Difficulty {
			continue
		}
		if f.Category != "" && q.Category != f.Category {
			continue
		}
		matched = append(matched, q)
	}
	return matched, nil
}

func (s *stubQuestionStore) GetByIDs(_ context.Context, ids []uuid.UUID) ([]Question, error) {
	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	matched := make([]Question, 0)
	for _, q := range s.pool {
		if _, ok := wanted[q.ID]; ok {
			matched = append(matched, q)
		}
	}
	return matched, nil
}

type memoryPoolCache struct {
	store map[string][]Question
}

func newMemoryPoolCache() *memoryPoolCache {
	return &memoryPoolCache{store: map[string][]Question{}}
}

func (c *memoryPoolCache) key(f Filter) string {
	return fmt.Sprintf("%d:%s", f.Difficulty, f.Category)
}

func (c *memoryPoolCache) Get(_ context.Context, f Filter) ([]Question, error) {
	if pool, ok := c.store[c.key(f)]; ok {
		return pool, nil
	}
	return nil, nil
}

func (c *memoryPoolCache) Set(_ context.Context, f Filter, pool []Question) error {
	c.store[c.key(f)] = pool
	return nil
}

func makeQuestions(n, difficulty int, category string) []Question {
	qs := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, Question{
			ID:          uuid.New(),
			Question:    fmt.Sprintf("문제 %d", i),
			Options:     []string{"A", "B", "C", "D"},
			AnswerIndex: i % 4,
			Explanation: "해설",
			Difficulty:  difficulty,
			Category:    category,
		})
	}
	return qs
}

func newTestSampler(store *stubQuestionStore, cache PoolCache) *Sampler {
	return NewSampler(store, cache, SamplerOptions{}, zerolog.Nop())
}

func TestGenerateFiltersByLevelAndCategory(t *testing.T) {
	store := &stubQuestionStore{}
	store.pool = append(store.pool, makeQuestions(5, 2, "금융")...)
	store.pool = append(store.pool, makeQuestions(8, 2, "경제")...)
	store.pool = append(store.pool, makeQuestions(4, 1, "금융")...)

	sampler := newTestSampler(store, nil)
	result, err := sampler.Generate(context.Background(), "level2-finance")

	assert.NoError(t, err)
	assert.Equal(t, "level2-finance", result.CollectionID)
	assert.Equal(t, Filter{Difficulty: 2, Category: "금융"}, store.lastFilter)
	// only 5 questions match even though the sample size is 30
	assert.Len(t, result.Questions, 5)
	assert.Equal(t, 5, result.Total)
	for _, q := range result.Questions {
		assert.Equal(t, 2, q.Difficulty)
		assert.Equal(t, "금융", q.Category)
	}
}

func TestGenerateWildcardCategory(t *testing.T) {
	store := &stubQuestionStore{}
	store.pool = append(store.pool, makeQuestions(10, 1, "경제")...)
	store.pool = append(store.pool, makeQuestions(10, 1, "금융")...)

	sampler := newTestSampler(store, nil)
	result, err := sampler.Generate(context.Background(), "level1-all")

	assert.NoError(t, err)
	assert.Equal(t, Filter{Difficulty: 1}, store.lastFilter)
	assert.Len(t, result.Questions, 20)
}

func TestGenerateComprehensiveDrawsFromWholeBank(t *testing.T) {
	store := &stubQuestionStore{}
	store.pool = append(store.pool, makeQuestions(30, 1, "경제")...)
	store.pool = append(store.pool, makeQuestions(30, 3, "거시경제")...)

	sampler := newTestSampler(store, nil)
	result, err := sampler.Generate(context.Background(), CollectionComprehensive)

	assert.NoError(t, err)
	assert.Equal(t, Filter{}, store.lastFilter)
	assert.Len(t, result.Questions, 50)
}

func TestGenerateNeverExceedsSizeOrDuplicates(t *testing.T) {
	store := &stubQuestionStore{pool: makeQuestions(80, 1, "경제")}

	sampler := newTestSampler(store, nil)
	result, err := sampler.Generate(context.Background(), "level1-economy")

	assert.NoError(t, err)
	assert.Len(t, result.Questions, 30)

	seen := make(map[uuid.UUID]struct{})
	for _, q := range result.Questions {
		_, dup := seen[q.ID]
		assert.False(t, dup, "duplicate question %s in one response", q.ID)
		seen[q.ID] = struct{}{}
	}
}

func TestGenerateInvalidCollectionID(t *testing.T) {
	sampler := newTestSampler(&stubQuestionStore{}, nil)

	for _, id := range []string{"bogus", "lvl2-finance", "levelx-finance", "level-finance"} {
		_, err := sampler.Generate(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidCollectionID, "id %q", id)
	}
}

func TestGenerateUnknownCategoryTokenPassesThrough(t *testing.T) {
	store := &stubQuestionStore{}
	sampler := newTestSampler(store, nil)

	_, err := sampler.Generate(context.Background(), "level1-crypto")

	assert.NoError(t, err)
	assert.Equal(t, Filter{Difficulty: 1, Category: "crypto"}, store.lastFilter)
}

func TestGenerateUsesPoolCache(t *testing.T) {
	store := &stubQuestionStore{pool: makeQuestions(10, 1, "경제")}
	cache := newMemoryPoolCache()
	sampler := newTestSampler(store, cache)

	_, err := sampler.Generate(context.Background(), "level1-economy")
	assert.NoError(t, err)
	_, err = sampler.Generate(context.Background(), "level1-economy")
	assert.NoError(t, err)

	assert.Equal(t, 1, store.listCalls, "second generation should be served from the cache")
	assert.Len(t, cache.store, 1)
}

func TestGenerateStorageErrorPropagates(t *testing.T) {
	store := &stubQuestionStore{listErr: assert.AnError}
	sampler := newTestSampler(store, nil)

	_, err := sampler.Generate(context.Background(), "level1-all")
	assert.ErrorIs(t, err, assert.AnError)
}
