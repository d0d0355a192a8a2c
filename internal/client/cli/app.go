// Package cli implements the interactive storefront client: a small REPL over
// the session manager, the API gateway, and the catalog/cart view-model.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/shopkart-io/shopkart/internal/client/api"
	"github.com/shopkart-io/shopkart/internal/client/config"
	"github.com/shopkart-io/shopkart/internal/client/models"
	"github.com/shopkart-io/shopkart/internal/client/session"
	"github.com/shopkart-io/shopkart/internal/client/view"
)

type App struct {
	config  *config.Config
	client  api.Client
	session *session.Manager

	// Reference data, fetched once at startup and never mutated locally.
	products   []models.Product
	categories []models.Category

	// cart is the latest server snapshot, nil while anonymous.
	cart *models.Cart

	// filter is transient view state, recomputed into a product listing on
	// every change.
	filter view.Filter

	reader *bufio.Reader
}

func NewApp(c *config.Config) *App {
	store := session.NewFileStore(c.TokenFile)
	client := api.NewHTTPClient(c.APIBaseURL, store)

	return &App{
		config:  c,
		client:  client,
		session: session.NewManager(store),
		reader:  bufio.NewReader(os.Stdin),
	}
}

// Run restores any persisted session, loads the catalog, and drops into the
// REPL.
func (a *App) Run(ctx context.Context) {
	if s, err := a.session.Restore(); err != nil {
		log.Printf("session restore error: %v", err)
	} else if s != nil {
		log.Printf("Welcome back, %s", s.Username)
		a.refreshCart(ctx)
	}

	if err := a.loadCatalog(ctx); err != nil {
		log.Printf("could not load catalog: %v", err)
	}
	a.filter = view.Filter{Category: view.CategoryAll, MaxPrice: view.MaxPrice(a.products)}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// loadCatalog fetches products and categories. The two have no ordering
// dependency, so they are issued concurrently and awaited jointly.
func (a *App) loadCatalog(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, err := a.client.Products(gctx)
		if err != nil {
			return fmt.Errorf("products: %w", err)
		}
		a.products = products
		return nil
	})
	g.Go(func() error {
		categories, err := a.client.Categories(gctx)
		if err != nil {
			return fmt.Errorf("categories: %w", err)
		}
		a.categories = categories
		return nil
	})

	return g.Wait()
}

// refreshCart replaces the local cart with a fresh server snapshot. An
// authentication failure here means the credential is beyond saving, so the
// session is torn down; other failures just leave the stale snapshot.
func (a *App) refreshCart(ctx context.Context) {
	if !a.isLoggedIn() {
		return
	}
	cart, err := a.client.Cart(ctx)
	if err != nil {
		log.Printf("could not load cart: %v", err)
		if errors.Is(err, api.ErrUnauthorized) {
			a.forceLogout()
		}
		return
	}
	a.cart = cart
}

// applySnapshot installs the cart returned by a mutating call. The snapshot
// fully replaces the local state, never merges into it.
func (a *App) applySnapshot(cart *models.Cart) {
	if cart != nil {
		a.cart = cart
	}
}

// reportErr prints an API failure and applies the session policy: an
// unauthorized failure that survived the refresh path forces a logout, all
// others are only reported.
func (a *App) reportErr(err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		log.Printf("%s", apiErr.Message)
	} else {
		log.Printf("%v", err)
	}
	if errors.Is(err, api.ErrUnauthorized) {
		a.forceLogout()
	}
}

func (a *App) forceLogout() {
	if err := a.session.Logout(); err != nil {
		log.Printf("logout error: %v", err)
	}
	a.cart = nil
	log.Println("Your session has expired, please log in again.")
}

func (a *App) isLoggedIn() bool {
	return a.session.Current() != nil
}

func (a *App) status() string {
	if s := a.session.Current(); s != nil {
		return fmt.Sprintf("%s, cart: %d", s.Username, view.ItemCount(a.cart))
	}
	return "anonymous"
}
