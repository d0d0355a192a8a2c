// Package api implements the authenticated request gateway of the ShopKart
// client: every call carries the current access token, an expired token is
// refreshed transparently exactly once, and failures surface as typed errors.
package api

import (
	"context"

	"github.com/shopkart-io/shopkart/internal/client/models"
)

// Cart item actions accepted by UpdateCartItem.
const (
	ActionIncrement = "add"
	ActionRemove    = "remove"
)

// CredentialStore is the persisted token pair the gateway reads before every
// call and rewrites after a successful refresh. The session manager owns the
// remaining mutations (login, logout).
type CredentialStore interface {
	AccessToken() string
	RefreshToken() string
	SetAccessToken(token string) error
	SetTokenPair(access, refresh string) error
	Clear() error
}

// Client is the storefront API surface consumed by the CLI and services.
type Client interface {
	// Login performs the token handshake and returns the issued pair.
	// It does not persist the tokens; that is the session manager's job.
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	// Register creates an account. Field-level validation failures come back
	// as a KindValidation error carrying the first field's first message.
	Register(ctx context.Context, username, email, password string) error

	// Products and Categories fetch unauthenticated reference data.
	Products(ctx context.Context) ([]models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)

	// Cart operations are authenticated; every mutation returns the full
	// updated snapshot which replaces any locally held cart.
	Cart(ctx context.Context) (*models.Cart, error)
	AddToCart(ctx context.Context, productID int64, quantity int) (*models.Cart, error)
	UpdateCartItem(ctx context.Context, itemID int64, action string) (*models.Cart, error)
	RemoveCartItem(ctx context.Context, itemID int64) (*models.Cart, error)
	ClearCart(ctx context.Context) (*models.Cart, error)

	// PlaceOrder turns the active cart into an order. A 204 response yields
	// (nil, nil).
	PlaceOrder(ctx context.Context) (*models.Order, error)
	Orders(ctx context.Context) ([]models.Order, error)
}
