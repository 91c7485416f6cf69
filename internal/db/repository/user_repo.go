package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/econolearn/econolearn/internal/auth"
	"github.com/econolearn/econolearn/internal/quiz"
)

// UserRepository persists accounts and their missed-question sets. It backs
// both the auth user store and the quiz ledger store.
type UserRepository struct {
	pool *pgxpool.Pool
}

var (
	_ auth.UserStore   = (*UserRepository)(nil)
	_ quiz.LedgerStore = (*UserRepository)(nil)
)

// NewUserRepository wraps a pgx pool for user operations.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const uniqueViolation = "23505"

// Create inserts a new account. The missed-question set starts empty via the
// column default; it is never written here.
func (r *UserRepository) Create(ctx context.Context, u auth.User) error {
	const q = `
INSERT INTO users (user_id, password_hash, name, age, email, know_level, interests)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, q, u.UserID, u.PasswordHash, u.Name, u.Age, u.Email, u.KnowLevel, u.Interests)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == "users_email_key" {
				return auth.ErrEmailTaken
			}
			return auth.ErrUserIDTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches an account by user id.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (auth.User, error) {
	const q = `
SELECT user_id, password_hash, name, age, email, know_level, interests, created_at, last_login_at
FROM users
WHERE user_id = $1`

	return r.scanUser(r.pool.QueryRow(ctx, q, userID))
}

// GetByEmail fetches an account by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	const q = `
SELECT user_id, password_hash, name, age, email, know_level, interests, created_at, last_login_at
FROM users
WHERE email = $1`

	return r.scanUser(r.pool.QueryRow(ctx, q, email))
}

// UpdateLastLogin stamps the last login timestamp.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}

// AddWrongQuestions unions ids into the user's missed-question set in a
// single statement, so concurrent submissions cannot lose each other's
// additions. Returns the new cardinality.
func (r *UserRepository) AddWrongQuestions(ctx context.Context, userID string, ids []uuid.UUID) (int, error) {
	const q = `
UPDATE users
SET wrong_questions = ARRAY(
	SELECT DISTINCT q FROM unnest(wrong_questions || $2::uuid[]) AS q
)
WHERE user_id = $1
RETURNING cardinality(wrong_questions)`

	return r.mutateWrongSet(ctx, q, userID, ids)
}

// RemoveWrongQuestions subtracts ids from the user's missed-question set in a
// single statement. Ids not present are no-ops. Returns the remaining
// cardinality.
func (r *UserRepository) RemoveWrongQuestions(ctx context.Context, userID string, ids []uuid.UUID) (int, error) {
	const q = `
UPDATE users
SET wrong_questions = ARRAY(
	SELECT q FROM unnest(wrong_questions) AS q WHERE q <> ALL($2::uuid[])
)
WHERE user_id = $1
RETURNING cardinality(wrong_questions)`

	return r.mutateWrongSet(ctx, q, userID, ids)
}

// GetWrongQuestions returns the user's missed-question set.
func (r *UserRepository) GetWrongQuestions(ctx context.Context, userID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT wrong_questions FROM users WHERE user_id = $1`, userID).Scan(&ids)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, quiz.ErrUserNotFound
		}
		return nil, fmt.Errorf("select missed-question set: %w", err)
	}
	return ids, nil
}

// CountWrongQuestions returns the cardinality of the user's missed-question set.
func (r *UserRepository) CountWrongQuestions(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT cardinality(wrong_questions) FROM users WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, quiz.ErrUserNotFound
		}
		return 0, fmt.Errorf("count missed-question set: %w", err)
	}
	return count, nil
}

func (r *UserRepository) mutateWrongSet(ctx context.Context, query, userID string, ids []uuid.UUID) (int, error) {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	var count int
	err := r.pool.QueryRow(ctx, query, userID, ids).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, quiz.ErrUserNotFound
		}
		return 0, fmt.Errorf("update missed-question set: %w", err)
	}
	return count, nil
}

func (r *UserRepository) scanUser(row pgx.Row) (auth.User, error) {
	var u auth.User
	err := row.Scan(&u.UserID, &u.PasswordHash, &u.Name, &u.Age, &u.Email, &u.KnowLevel, &u.Interests, &u.CreatedAt, &u.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}
