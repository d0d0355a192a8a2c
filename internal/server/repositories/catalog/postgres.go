package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopkart-io/shopkart/internal/common"
	"github.com/shopkart-io/shopkart/internal/dbx"
	"github.com/shopkart-io/shopkart/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `p.id, p.category_id, c.name, p.name, p.description, p.price, COALESCE(p.image, ''), p.in_stock, p.quantity, p.rating`

func scanProduct(row interface{ Scan(dest ...any) error }, p *models.Product) error {
	return row.Scan(&p.ID, &p.CategoryID, &p.CategoryName, &p.Name, &p.Description,
		&p.Price, &p.Image, &p.InStock, &p.Quantity, &p.Rating)
}

func (r *PostgresRepository) Products(ctx context.Context) ([]models.Product, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM products p
		 JOIN categories c ON c.id = p.category_id
		 ORDER BY p.id`, productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return products, nil
}

func (r *PostgresRepository) ProductByID(ctx context.Context, id int64) (*models.Product, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM products p
		 JOIN categories c ON c.id = p.category_id
		 WHERE p.id = $1`, productColumns)

	p := &models.Product{}
	if err := scanProduct(r.db.QueryRowContext(ctx, query, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Categories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, slug FROM categories ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return categories, nil
}
