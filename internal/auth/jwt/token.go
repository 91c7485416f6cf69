package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims for JWT tokens.
type Claims struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	KnowLevel int    `json:"know_level"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// TokenConfig holds JWT signing configuration.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration // default: 1 hour
	RefreshTTL    time.Duration // default: 7 days
	Issuer        string
}

// Manager handles JWT token generation and validation.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

// NewManager creates a JWT token manager.
func NewManager(cfg TokenConfig) *Manager {
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = 1 * time.Hour
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "econolearn"
	}

	return &Manager{
		accessSecret:  cfg.AccessSecret,
		refreshSecret: cfg.RefreshSecret,
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        cfg.Issuer,
	}
}

// TokenUser carries the claim fields stamped into tokens.
type TokenUser struct {
	UserID    string
	Name      string
	KnowLevel int
}

// GenerateAccessToken creates a short-lived access token.
func (m *Manager) GenerateAccessToken(user TokenUser) (string, error) {
	return m.generate(user, m.accessSecret, m.accessTTL)
}

// GenerateRefreshToken creates a long-lived refresh token.
func (m *Manager) GenerateRefreshToken(user TokenUser) (string, error) {
	return m.generate(user, m.refreshSecret, m.refreshTTL)
}

func (m *Manager) generate(user TokenUser, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    user.UserID,
		Name:      user.Name,
		KnowLevel: user.KnowLevel,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccessToken parses and validates an access token.
func (m *Manager) ValidateAccessToken(tokenString string) (*Claims, error) {
	return m.validate(tokenString, m.accessSecret)
}

// ValidateRefreshToken parses and validates a refresh token.
func (m *Manager) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return m.validate(tokenString, m.refreshSecret)
}

func (m *Manager) validate(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// AccessTTL reports the configured access token lifetime.
func (m *Manager) AccessTTL() time.Duration {
	return m.accessTTL
}
