package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/econolearn/econolearn/internal/quiz"
)

// QuestionRepository provides read access to the seeded question bank.
// Questions are immutable once stored; only the seeder writes them.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

var _ quiz.QuestionStore = (*QuestionRepository)(nil)

// NewQuestionRepository wraps a pgx pool for question queries.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByFilter returns every question matching the filter. Zero filter values
// leave the corresponding column unconstrained.
func (r *QuestionRepository) ListByFilter(ctx context.Context, f quiz.Filter) ([]quiz.Question, error) {
	const q = `
SELECT question_id, question, options, answer_index, explanation, difficulty, category
FROM questions
WHERE ($1::int = 0 OR difficulty = $1::int)
  AND ($2::text = '' OR category = $2::text)`

	rows, err := r.pool.Query(ctx, q, f.Difficulty, f.Category)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// GetByIDs returns the stored questions for the given ids. Ids that do not
// resolve (deleted or reseeded questions) are absent from the result.
func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]quiz.Question, error) {
	const q = `
SELECT question_id, question, options, answer_index, explanation, difficulty, category
FROM questions
WHERE question_id = ANY($1::uuid[])`

	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("get questions by ids: %w", err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func scanQuestions(rows pgx.Rows) ([]quiz.Question, error) {
	questions := make([]quiz.Question, 0)
	for rows.Next() {
		var q quiz.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Options, &q.AnswerIndex, &q.Explanation, &q.Difficulty, &q.Category); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}
