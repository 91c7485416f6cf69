package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// categoryLabels maps short collection-id tokens to the stored display values.
// Unrecognized tokens pass through literally.
var categoryLabels = map[string]string{
	"economy": "경제",
	"finance": "금융",
	"macro":   "거시경제",
	"invest":  "투자분석",
}

const categoryWildcard = "all"

// SamplerOptions tunes sample sizes per collection kind.
type SamplerOptions struct {
	ComprehensiveSize int // all-comprehensive draw, default 50
	CollectionSize    int // level<N>-<category> draw, default 30
}

// Sampler resolves collection ids into filter predicates and draws random
// question subsets.
type Sampler struct {
	questions QuestionStore
	cache     PoolCache
	opts      SamplerOptions
	logger    zerolog.Logger
}

// NewSampler constructs a sampler over the question store, with an optional
// pool cache (nil disables caching).
func NewSampler(questions QuestionStore, cache PoolCache, opts SamplerOptions, logger zerolog.Logger) *Sampler {
	if opts.ComprehensiveSize <= 0 {
		opts.ComprehensiveSize = 50
	}
	if opts.CollectionSize <= 0 {
		opts.CollectionSize = 30
	}
	return &Sampler{
		questions: questions,
		cache:     cache,
		opts:      opts,
		logger:    logger.With().Str("component", "quiz_sampler").Logger(),
	}
}

// Generate resolves collectionID and draws a uniform random subset, without
// replacement, from the matching question population. Pools smaller than the
// sample size return in full; the order of the result is not reproducible
// across calls.
func (s *Sampler) Generate(ctx context.Context, collectionID string) (Quiz, error) {
	filter, size, err := s.resolve(collectionID)
	if err != nil {
		return Quiz{}, err
	}

	pool, err := s.fetchPool(ctx, filter)
	if err != nil {
		return Quiz{}, fmt.Errorf("fetch question pool: %w", err)
	}

	sampled := samplePool(pool, size)
	quizzesGenerated.WithLabelValues(collectionID).Inc()

	return Quiz{
		CollectionID: collectionID,
		Questions:    sampled,
		Total:        len(sampled),
	}, nil
}

// resolve parses a collection id into its filter predicate and sample size.
func (s *Sampler) resolve(collectionID string) (Filter, int, error) {
	if collectionID == CollectionComprehensive {
		return Filter{}, s.opts.ComprehensiveSize, nil
	}

	levelToken, categoryToken, found := strings.Cut(collectionID, "-")
	if !found {
		return Filter{}, 0, fmt.Errorf("%w: %q has no delimiter", ErrInvalidCollectionID, collectionID)
	}

	rawLevel, ok := strings.CutPrefix(levelToken, "level")
	if !ok {
		return Filter{}, 0, fmt.Errorf("%w: %q must start with level<N>", ErrInvalidCollectionID, collectionID)
	}
	level, err := strconv.Atoi(rawLevel)
	if err != nil || level <= 0 {
		return Filter{}, 0, fmt.Errorf("%w: bad level in %q", ErrInvalidCollectionID, collectionID)
	}

	filter := Filter{Difficulty: level}
	if categoryToken != categoryWildcard {
		if label, ok := categoryLabels[categoryToken]; ok {
			filter.Category = label
		} else {
			filter.Category = categoryToken
		}
	}
	return filter, s.opts.CollectionSize, nil
}

func (s *Sampler) fetchPool(ctx context.Context, f Filter) ([]Question, error) {
	if s.cache != nil {
		if pool, err := s.cache.Get(ctx, f); err == nil && pool != nil {
			return pool, nil
		} else if err != nil {
			s.logger.Warn().Err(err).Msg("pool cache read failed")
		}
	}

	pool, err := s.questions.ListByFilter(ctx, f)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, f, pool); err != nil {
			s.logger.Warn().Err(err).Msg("pool cache write failed")
		}
	}
	return pool, nil
}

// samplePool shuffles a copy of the pool and takes at most size questions.
func samplePool(pool []Question, size int) []Question {
	shuffled := make([]Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if size > len(shuffled) {
		size = len(shuffled)
	}
	return shuffled[:size]
}
