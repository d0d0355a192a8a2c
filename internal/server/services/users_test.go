package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkart-io/shopkart/internal/common"
	"github.com/shopkart-io/shopkart/internal/server/auth"
	"github.com/shopkart-io/shopkart/internal/server/config"
	"github.com/shopkart-io/shopkart/internal/server/repositories/refreshtokens"
	"github.com/shopkart-io/shopkart/internal/server/repositories/users"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Minute,
		RefreshTokenValidityDuration: time.Hour,
	}
}

func newUserService() *UserService {
	return NewUserService(users.NewInMemoryRepository(), refreshtokens.NewInMemoryRepository(), testConfig())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s := newUserService()

	user, err := s.Register(ctx, "alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "correcthorse", user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	s := newUserService()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		field    string
	}{
		{"blank username", "", "a@example.com", "correcthorse", "username"},
		{"blank email", "alice", "", "correcthorse", "email"},
		{"blank password", "alice", "a@example.com", "", "password"},
		{"short password", "alice", "a@example.com", "short", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(ctx, tt.username, tt.email, tt.password)
			var fieldErrs FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.NotEmpty(t, fieldErrs[tt.field])
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := newUserService()

	_, err := s.Register(ctx, "alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice", "other@example.com", "correcthorse")
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, []string{"A user with that username already exists."}, fieldErrs["username"])
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s := newUserService()

	user, err := s.Register(ctx, "alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)

	pair, err := s.Login(ctx, "alice", "correcthorse")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := auth.ParseAccessToken(pair.Access, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginBadCredentials(t *testing.T) {
	ctx := context.Background()
	s := newUserService()

	_, err := s.Register(ctx, "alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)

	_, err = s.Login(ctx, "alice", "wrong")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))

	_, err = s.Login(ctx, "nobody", "correcthorse")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	s := newUserService()

	user, err := s.Register(ctx, "alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)

	pair, err := s.Login(ctx, "alice", "correcthorse")
	require.NoError(t, err)

	access, err := s.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)

	claims, err := auth.ParseAccessToken(access, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRefreshUnknownToken(t *testing.T) {
	ctx := context.Background()
	s := newUserService()

	_, err := s.Refresh(ctx, "not-a-token")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}
