package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/econolearn/econolearn/internal/auth/jwt"
)

// Service handles registration, login and profile lookups.
type Service struct {
	users    UserStore
	tokenMgr *jwt.Manager
	logger   zerolog.Logger
}

// ServiceOptions configures the auth service.
type ServiceOptions struct {
	TokenConfig jwt.TokenConfig
}

// NewService creates an authentication service.
func NewService(users UserStore, opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		users:    users,
		tokenMgr: jwt.NewManager(opts.TokenConfig),
		logger:   logger.With().Str("component", "auth_service").Logger(),
	}
}

// Register creates a new account. The user id and email must both be unused.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Profile, *TokenPair, error) {
	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := User{
		UserID:       req.UserID,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Age:          req.Age,
		Email:        req.Email,
		KnowLevel:    req.KnowLevel,
		Interests:    req.Interests,
	}
	if user.Interests == nil {
		user.Interests = []string{}
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUserIDTaken) || errors.Is(err, ErrEmailTaken) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Str("user_id", user.UserID).Msg("user registered")
	return profileOf(user), tokens, nil
}

// Login authenticates a user-id/password pair and stamps the login time.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Profile, *TokenPair, error) {
	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}

	if err := VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.UserID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.UserID).Msg("failed to stamp last login")
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Str("user_id", user.UserID).Msg("user logged in")
	return profileOf(user), tokens, nil
}

// GetProfile returns the profile for a user id.
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profileOf(user), nil
}

// ValidateToken checks an access token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*jwt.Claims, error) {
	return s.tokenMgr.ValidateAccessToken(tokenString)
}

func (s *Service) generateTokenPair(user User) (*TokenPair, error) {
	tokenUser := jwt.TokenUser{
		UserID:    user.UserID,
		Name:      user.Name,
		KnowLevel: user.KnowLevel,
	}

	access, err := s.tokenMgr.GenerateAccessToken(tokenUser)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokenMgr.GenerateRefreshToken(tokenUser)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokenMgr.AccessTTL().Seconds()),
	}, nil
}

func profileOf(user User) *Profile {
	return &Profile{
		UserID:    user.UserID,
		Name:      user.Name,
		Age:       user.Age,
		Email:     user.Email,
		KnowLevel: user.KnowLevel,
		Interests: user.Interests,
	}
}
