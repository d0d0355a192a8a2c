// Package services implements the storefront's business rules on top of the
// repositories. Handlers translate service results and sentinel errors into
// HTTP responses.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shopkart-io/shopkart/internal/common"
	"github.com/shopkart-io/shopkart/internal/server/auth"
	"github.com/shopkart-io/shopkart/internal/server/config"
	"github.com/shopkart-io/shopkart/internal/server/models"
	"github.com/shopkart-io/shopkart/internal/server/repositories/refreshtokens"
	"github.com/shopkart-io/shopkart/internal/server/repositories/users"
)

// FieldErrors maps a request field to its validation messages, mirroring the
// response shape of form-style APIs: {"username": ["..."], ...}.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msgs := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return strings.Join(parts, ", ")
}

// TokenPair is the token endpoint's response body.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type UserService struct {
	users  users.Repository
	tokens refreshtokens.Repository
	config *config.Config
}

func NewUserService(u users.Repository, t refreshtokens.Repository, cfg *config.Config) *UserService {
	return &UserService{users: u, tokens: t, config: cfg}
}

// Register creates an account. Validation failures come back as a
// FieldErrors so the handler can serialize them field by field.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	fieldErrs := FieldErrors{}
	if username == "" {
		fieldErrs["username"] = append(fieldErrs["username"], "This field may not be blank.")
	}
	if email == "" {
		fieldErrs["email"] = append(fieldErrs["email"], "This field may not be blank.")
	}
	if password == "" {
		fieldErrs["password"] = append(fieldErrs["password"], "This field may not be blank.")
	} else if len(password) < 8 {
		fieldErrs["password"] = append(fieldErrs["password"],
			"This password is too short. It must contain at least 8 characters.")
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.users.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, FieldErrors{
				"username": {"A user with that username already exists."},
			}
		}
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and issues an access/refresh token pair.
// Bad credentials are reported as common.ErrUnauthorized without revealing
// whether the account exists.
func (s *UserService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrUnauthorized
	}

	access, err := auth.GenerateAccessToken(user.ID, user.Username,
		[]byte(s.config.SecretKey), s.config.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}

	refresh := uuid.NewString()
	if err := s.tokens.Create(ctx, user.ID, refresh, s.config.RefreshTokenValidityDuration); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token. Unknown or
// expired tokens yield common.ErrUnauthorized.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.UserIDByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", err
	}

	access, err := auth.GenerateAccessToken(user.ID, user.Username,
		[]byte(s.config.SecretKey), s.config.AccessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("generating access token: %w", err)
	}
	return access, nil
}
