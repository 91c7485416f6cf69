package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/econolearn/econolearn/internal/term"
)

// TermRepository provides read access to the economic-term dictionary.
type TermRepository struct {
	pool *pgxpool.Pool
}

var _ term.Store = (*TermRepository)(nil)

// NewTermRepository wraps a pgx pool for dictionary queries.
func NewTermRepository(pool *pgxpool.Pool) *TermRepository {
	return &TermRepository{pool: pool}
}

// List returns terms matching the filter, ordered alphabetically.
func (r *TermRepository) List(ctx context.Context, f term.Filter) ([]term.Term, error) {
	const q = `
SELECT term_id, term, definition, category, difficulty
FROM economic_terms
WHERE ($1::text = '' OR category = $1::text)
  AND ($2::int = -1 OR difficulty = $2::int)
ORDER BY term`

	rows, err := r.pool.Query(ctx, q, f.Category, f.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	defer rows.Close()

	terms := make([]term.Term, 0)
	for rows.Next() {
		var t term.Term
		if err := rows.Scan(&t.ID, &t.Term, &t.Definition, &t.Category, &t.Difficulty); err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		terms = append(terms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate terms: %w", err)
	}
	return terms, nil
}
