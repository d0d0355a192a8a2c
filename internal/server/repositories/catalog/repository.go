// Package catalog stores the immutable product and category reference data.
package catalog

import (
	"context"

	"github.com/shopkart-io/shopkart/internal/server/models"
)

type Repository interface {
	Products(ctx context.Context) ([]models.Product, error)
	ProductByID(ctx context.Context, id int64) (*models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
}
