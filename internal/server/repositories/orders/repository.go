// Package orders persists carts, placed orders and their line items.
package orders

import (
	"context"
	"time"

	"github.com/shopkart-io/shopkart/internal/server/models"
)

// Repository stores orders. A customer's cart is an order with IsOrdered
// false; at most one such order exists per customer at a time.
type Repository interface {
	// ActiveCart returns the customer's open cart, or common.ErrNotFound.
	ActiveCart(ctx context.Context, customerID int64) (*models.Order, error)
	// CreateCart opens a new empty cart for the customer.
	CreateCart(ctx context.Context, customerID int64) (*models.Order, error)
	// OrdersPlaced returns the customer's placed orders, newest first.
	OrdersPlaced(ctx context.Context, customerID int64) ([]models.Order, error)
	// MarkOrdered flips the order to placed state.
	MarkOrdered(ctx context.Context, orderID int64, at time.Time) error

	// Items returns the order's line items ordered by id.
	Items(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	// ItemByID returns the item only if it belongs to one of the
	// customer's orders; common.ErrNotFound otherwise.
	ItemByID(ctx context.Context, itemID, customerID int64) (*models.OrderItem, error)
	// FindItem locates the order's line item for a product, or
	// common.ErrNotFound.
	FindItem(ctx context.Context, orderID, productID int64) (*models.OrderItem, error)
	AddItem(ctx context.Context, orderID, productID int64, quantity int) (*models.OrderItem, error)
	SetItemQuantity(ctx context.Context, itemID int64, quantity int) error
	DeleteItem(ctx context.Context, itemID int64) error
	// ClearItems removes every line item from the order.
	ClearItems(ctx context.Context, orderID int64) error
}
