package auth

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/econolearn/econolearn/internal/auth/jwt"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, u User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, userID string) (User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *mockUserStore) UpdateLastLogin(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func newTestService(store UserStore) *Service {
	return NewService(store, ServiceOptions{
		TokenConfig: jwt.TokenConfig{
			AccessSecret:  []byte("test-access-secret"),
			RefreshSecret: []byte("test-refresh-secret"),
		},
	}, zerolog.Nop())
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("testpassword123")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.True(t, len(hash) > 20) // bcrypt hashes are long
}

func TestVerifyPassword(t *testing.T) {
	hash, _ := HashPassword("testpassword123")

	err := VerifyPassword(hash, "testpassword123")
	assert.NoError(t, err)

	err = VerifyPassword(hash, "wrongpassword")
	assert.Error(t, err)
}

func TestPasswordTooShort(t *testing.T) {
	_, err := HashPassword("short")
	assert.Error(t, err)
	assert.Equal(t, ErrPasswordTooShort, err)
}

func TestRegisterCreatesUserWithHashedPassword(t *testing.T) {
	store := new(mockUserStore)
	svc := newTestService(store)

	var created User
	store.On("Create", mock.Anything, mock.MatchedBy(func(u User) bool {
		created = u
		return u.UserID == "woo15907" && u.PasswordHash != "password123"
	})).Return(nil)

	profile, tokens, err := svc.Register(context.Background(), RegisterRequest{
		UserID:    "woo15907",
		Password:  "password123",
		Name:      "김우진",
		Age:       24,
		Email:     "woo@example.com",
		KnowLevel: 2,
	})

	assert.NoError(t, err)
	assert.Equal(t, "woo15907", profile.UserID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NoError(t, VerifyPassword(created.PasswordHash, "password123"))
	store.AssertExpectations(t)
}

func TestRegisterDuplicateUserID(t *testing.T) {
	store := new(mockUserStore)
	store.On("Create", mock.Anything, mock.Anything).Return(ErrUserIDTaken)
	svc := newTestService(store)

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		UserID:   "woo15907",
		Password: "password123",
		Name:     "김우진",
		Email:    "woo@example.com",
	})

	assert.ErrorIs(t, err, ErrUserIDTaken)
}

func TestLoginSuccessStampsLastLogin(t *testing.T) {
	hash, _ := HashPassword("password123")
	store := new(mockUserStore)
	store.On("GetByID", mock.Anything, "woo15907").Return(User{
		UserID:       "woo15907",
		PasswordHash: hash,
		Name:         "김우진",
		KnowLevel:    2,
	}, nil)
	store.On("UpdateLastLogin", mock.Anything, "woo15907").Return(nil)
	svc := newTestService(store)

	profile, tokens, err := svc.Login(context.Background(), LoginRequest{
		UserID:   "woo15907",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "woo15907", profile.UserID)
	assert.NotEmpty(t, tokens.AccessToken)
	store.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := HashPassword("password123")
	store := new(mockUserStore)
	store.On("GetByID", mock.Anything, "woo15907").Return(User{
		UserID:       "woo15907",
		PasswordHash: hash,
	}, nil)
	svc := newTestService(store)

	_, _, err := svc.Login(context.Background(), LoginRequest{
		UserID:   "woo15907",
		Password: "nope-nope-nope",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	store := new(mockUserStore)
	store.On("GetByID", mock.Anything, "ghost").Return(User{}, ErrNotFound)
	svc := newTestService(store)

	_, _, err := svc.Login(context.Background(), LoginRequest{
		UserID:   "ghost",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	store := new(mockUserStore)
	store.On("Create", mock.Anything, mock.Anything).Return(nil)
	svc := newTestService(store)

	_, tokens, err := svc.Register(context.Background(), RegisterRequest{
		UserID:    "woo15907",
		Password:  "password123",
		Name:      "김우진",
		Email:     "woo@example.com",
		KnowLevel: 3,
	})
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(tokens.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "woo15907", claims.UserID)
	assert.Equal(t, 3, claims.KnowLevel)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
