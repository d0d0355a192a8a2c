// Package refreshtokens stores opaque refresh tokens issued alongside
// access tokens.
package refreshtokens

import (
	"context"
	"time"
)

type Repository interface {
	// Create stores a refresh token valid for the given duration.
	Create(ctx context.Context, userID int64, token string, validity time.Duration) error
	// UserIDByToken resolves a token to its owner. Returns
	// common.ErrNotFound for unknown or expired tokens.
	UserIDByToken(ctx context.Context, token string) (int64, error)
}
