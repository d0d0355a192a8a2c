// Package users stores customer accounts.
package users

import (
	"context"

	"github.com/shopkart-io/shopkart/internal/server/models"
)

type Repository interface {
	// Create inserts the user and fills in its ID. A username collision
	// yields common.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
