package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) ActiveCart(ctx context.Context, customerID int64) (*models.Order, error) {
	query := `SELECT id, customer_id, date_ordered, is_ordered, status
		FROM orders WHERE customer_id = $1 AND is_ordered = FALSE`

	o := &models.Order{}
	err := r.db.QueryRowContext(ctx, query, customerID).
		Scan(&o.ID, &o.CustomerID, &o.DateOrdered, &o.IsOrdered, &o.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) CreateCart(ctx context.Context, customerID int64) (*models.Order, error) {
	query := `INSERT INTO orders (customer_id, date_ordered, is_ordered, status)
		VALUES ($1, NOW(), FALSE, $2)
		RETURNING id, customer_id, date_ordered, is_ordered, status`

	o := &models.Order{}
	err := r.db.QueryRowContext(ctx, query, customerID, models.StatusInCart).
		Scan(&o.ID, &o.CustomerID, &o.DateOrdered, &o.IsOrdered, &o.Status)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) OrdersPlaced(ctx context.Context, customerID int64) ([]models.Order, error) {
	query := `SELECT id, customer_id, date_ordered, is_ordered, status
		FROM orders WHERE customer_id = $1 AND is_ordered = TRUE
		ORDER BY date_ordered DESC`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Order, 0)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.DateOrdered, &o.IsOrdered, &o.Status); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) MarkOrdered(ctx context.Context, orderID int64, at time.Time) error {
	query := `UPDATE orders SET is_ordered = TRUE, status = $2, date_ordered = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, orderID, models.StatusPlaced, at); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Items(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	query := `SELECT id, order_id, product_id, quantity, date_added
		FROM order_items WHERE order_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]models.OrderItem, 0)
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.DateAdded); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) ItemByID(ctx context.Context, itemID, customerID int64) (*models.OrderItem, error) {
	query := `SELECT i.id, i.order_id, i.product_id, i.quantity, i.date_added
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE i.id = $1 AND o.customer_id = $2`

	it := &models.OrderItem{}
	err := r.db.QueryRowContext(ctx, query, itemID, customerID).
		Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.DateAdded)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return it, nil
}

func (r *PostgresRepository) FindItem(ctx context.Context, orderID, productID int64) (*models.OrderItem, error) {
	query := `SELECT id, order_id, product_id, quantity, date_added
		FROM order_items WHERE order_id = $1 AND product_id = $2`

	it := &models.OrderItem{}
	err := r.db.QueryRowContext(ctx, query, orderID, productID).
		Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.DateAdded)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return it, nil
}

func (r *PostgresRepository) AddItem(ctx context.Context, orderID, productID int64, quantity int) (*models.OrderItem, error) {
	query := `INSERT INTO order_items (order_id, product_id, quantity, date_added)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, order_id, product_id, quantity, date_added`

	it := &models.OrderItem{}
	err := r.db.QueryRowContext(ctx, query, orderID, productID, quantity).
		Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.DateAdded)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return it, nil
}

func (r *PostgresRepository) SetItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	query := `UPDATE order_items SET quantity = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, itemID, quantity); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, itemID int64) error {
	query := `DELETE FROM order_items WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, itemID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ClearItems(ctx context.Context, orderID int64) error {
	query := `DELETE FROM order_items WHERE order_id = $1`
	if _, err := r.db.ExecContext(ctx, query, orderID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
