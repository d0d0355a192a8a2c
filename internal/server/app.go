// Package server initializes and runs the storefront API server. It selects
// the storage backend from configuration, applies schema migrations and
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"github.com/shopkart-io/shopkart/internal/dbx"
	"github.com/shopkart-io/shopkart/internal/logging"
	"github.com/shopkart-io/shopkart/internal/server/config"
	"github.com/shopkart-io/shopkart/internal/server/httpapi"
	"github.com/shopkart-io/shopkart/internal/server/migrations"
	"github.com/shopkart-io/shopkart/internal/server/models"
	"github.com/shopkart-io/shopkart/internal/server/repositories/catalog"
	"github.com/shopkart-io/shopkart/internal/server/repositories/orders"
	"github.com/shopkart-io/shopkart/internal/server/repositories/refreshtokens"
	"github.com/shopkart-io/shopkart/internal/server/repositories/users"
	"github.com/shopkart-io/shopkart/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
	db     *sql.DB
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	var (
		userRepo    users.Repository
		tokenRepo   refreshtokens.Repository
		catalogRepo catalog.Repository
		orderRepo   orders.Repository
		db          *sql.DB
	)

	if cfg.DatabaseDSN != "" {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := runMigrations(context.Background(), db); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		if err := seedCatalog(context.Background(), db); err != nil {
			return nil, fmt.Errorf("seeding catalog: %w", err)
		}
		userRepo = users.NewPostgresRepository(db)
		tokenRepo = refreshtokens.NewPostgresRepository(db)
		catalogRepo = catalog.NewPostgresRepository(db)
		orderRepo = orders.NewPostgresRepository(db)
	} else {
		userRepo = users.NewInMemoryRepository()
		tokenRepo = refreshtokens.NewInMemoryRepository()
		mem := catalog.NewInMemoryRepository()
		mem.Seed(demoCategories, demoProducts)
		catalogRepo = mem
		orderRepo = orders.NewInMemoryRepository()
	}

	userSvc := services.NewUserService(userRepo, tokenRepo, cfg)
	catalogSvc := services.NewCatalogService(catalogRepo, cfg)
	orderSvc := services.NewOrderService(orderRepo, catalogRepo, catalogSvc)

	srv := httpapi.NewServer(userSvc, catalogSvc, orderSvc, []byte(cfg.SecretKey), logger)

	return &App{config: cfg, logger: logger, server: srv, db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Run serves HTTP until the context is cancelled or a termination signal
// arrives, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.initSignalHandler(cancel)

	httpServer := &http.Server{
		Addr:    app.config.Addr,
		Handler: app.server.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "listening", "addr", app.config.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			return fmt.Errorf("closing db: %w", err)
		}
	}
	return nil
}

func (app *App) initSignalHandler(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancel()
	}()
}

// seedCatalog loads the demo fixtures into an empty database so a fresh
// install has something to sell. Existing catalogs are left alone.
func seedCatalog(ctx context.Context, db *sql.DB) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, c := range demoCategories {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO categories (id, name, slug) VALUES ($1, $2, $3)`,
				c.ID, c.Name, c.Slug); err != nil {
				return err
			}
		}
		for _, p := range demoProducts {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO products (id, category_id, name, description, price, image, in_stock, quantity, rating)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.Image, p.InStock, p.Quantity, p.Rating); err != nil {
				return err
			}
		}
		return nil
	})
}

// demoCategories and demoProducts seed the in-memory backend so the server
// is usable without a database.
var demoCategories = []models.Category{
	{ID: 1, Name: "Electronics", Slug: "electronics"},
	{ID: 2, Name: "Books", Slug: "books"},
}

var demoProducts = []models.Product{
	{ID: 1, CategoryID: 1, CategoryName: "Electronics", Name: "Wireless Headphones",
		Description: "Over-ear wireless headphones with noise cancelling.",
		Price:       decimal.RequireFromString("129.99"), Image: "products/headphones.jpg",
		InStock: true, Quantity: 25, Rating: decimal.RequireFromString("4.6")},
	{ID: 2, CategoryID: 1, CategoryName: "Electronics", Name: "Mechanical Keyboard",
		Description: "Tenkeyless mechanical keyboard, brown switches.",
		Price:       decimal.RequireFromString("89.50"), Image: "products/keyboard.jpg",
		InStock: true, Quantity: 40, Rating: decimal.RequireFromString("4.3")},
	{ID: 3, CategoryID: 2, CategoryName: "Books", Name: "The Go Programming Language",
		Description: "Donovan and Kernighan's reference on Go.",
		Price:       decimal.RequireFromString("39.95"), Image: "products/gopl.jpg",
		InStock: true, Quantity: 12, Rating: decimal.RequireFromString("4.8")},
}
