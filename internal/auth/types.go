package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUserIDTaken signals a registration attempt with an existing user id.
	ErrUserIDTaken = errors.New("user id already registered")
	// ErrEmailTaken signals a registration attempt with an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotFound signals that the referenced user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers unknown user ids and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is a stored account with its profile fields. The missed-question set
// lives on the same row but is owned by the quiz ledger; auth never writes it.
type User struct {
	UserID       string
	PasswordHash string
	Name         string
	Age          int
	Email        string
	KnowLevel    int
	Interests    []string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// UserStore persists accounts, keyed by the client-chosen user id.
type UserStore interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateLastLogin(ctx context.Context, userID string) error
}

// TokenPair holds access and refresh tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// RegisterRequest carries the signup form fields.
type RegisterRequest struct {
	UserID    string   `json:"user_id"`
	Password  string   `json:"password"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Email     string   `json:"email"`
	KnowLevel int      `json:"know_level"`
	Interests []string `json:"interests"`
}

// LoginRequest for user-id/password authentication.
type LoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// Profile is the client-facing view of an account. The raw missed-question
// set is never exposed here, only profile data.
type Profile struct {
	UserID    string   `json:"user_id"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Email     string   `json:"email"`
	KnowLevel int      `json:"know_level"`
	Interests []string `json:"interests"`
}
