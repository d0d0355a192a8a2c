package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopkart-io/shopkart/internal/common"
	"github.com/shopkart-io/shopkart/internal/server/models"
	"github.com/shopkart-io/shopkart/internal/server/repositories/catalog"
	"github.com/shopkart-io/shopkart/internal/server/repositories/orders"
)

const (
	// ActionIncrement and ActionRemove are the accepted values of the
	// cart item update action.
	ActionIncrement = "add"
	ActionRemove    = "remove"
)

// ItemSnapshot is a serialized cart line with its product embedded in full.
type ItemSnapshot struct {
	ID         int64           `json:"id"`
	Product    ProductPayload  `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CartSnapshot is the serialized active cart.
type CartSnapshot struct {
	ID         int64           `json:"id"`
	Customer   int64           `json:"customer"`
	IsOrdered  bool            `json:"is_ordered"`
	Status     string          `json:"status"`
	Items      []ItemSnapshot  `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderSnapshot is a placed order in the customer's history.
type OrderSnapshot struct {
	ID          int64           `json:"id"`
	Customer    int64           `json:"customer"`
	DateOrdered time.Time       `json:"date_ordered"`
	IsOrdered   bool            `json:"is_ordered"`
	Status      string          `json:"status"`
	Items       []ItemSnapshot  `json:"items"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type OrderService struct {
	orders  orders.Repository
	catalog catalog.Repository
	payload *CatalogService
	now     func() time.Time
}

func NewOrderService(o orders.Repository, c catalog.Repository, payload *CatalogService) *OrderService {
	return &OrderService{orders: o, catalog: c, payload: payload, now: time.Now}
}

// Cart returns the customer's active cart, creating an empty one on first
// use so the endpoint never 404s for an authenticated customer.
func (s *OrderService) Cart(ctx context.Context, customerID int64) (*CartSnapshot, error) {
	cart, err := s.activeCart(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.cartSnapshot(ctx, cart)
}

func (s *OrderService) activeCart(ctx context.Context, customerID int64) (*models.Order, error) {
	cart, err := s.orders.ActiveCart(ctx, customerID)
	if errors.Is(err, common.ErrNotFound) {
		return s.orders.CreateCart(ctx, customerID)
	}
	return cart, err
}

// AddToCart adds the product to the active cart, merging into an existing
// line by incrementing its quantity. A quantity below one counts as one.
func (s *OrderService) AddToCart(ctx context.Context, customerID, productID int64, quantity int) (*CartSnapshot, error) {
	if quantity < 1 {
		quantity = 1
	}
	if _, err := s.catalog.ProductByID(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.activeCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	item, err := s.orders.FindItem(ctx, cart.ID, productID)
	switch {
	case err == nil:
		if err := s.orders.SetItemQuantity(ctx, item.ID, item.Quantity+quantity); err != nil {
			return nil, err
		}
	case errors.Is(err, common.ErrNotFound):
		if _, err := s.orders.AddItem(ctx, cart.ID, productID, quantity); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return s.cartSnapshot(ctx, cart)
}

// UpdateItem applies an increment or decrement action to a cart line owned
// by the customer. Decrementing to zero removes the line.
func (s *OrderService) UpdateItem(ctx context.Context, customerID, itemID int64, action string) (*CartSnapshot, error) {
	if action != ActionIncrement && action != ActionRemove {
		return nil, common.ErrInvalidAction
	}

	item, err := s.orders.ItemByID(ctx, itemID, customerID)
	if err != nil {
		return nil, err
	}

	quantity := item.Quantity + 1
	if action == ActionRemove {
		quantity = item.Quantity - 1
	}
	if quantity <= 0 {
		if err := s.orders.DeleteItem(ctx, item.ID); err != nil {
			return nil, err
		}
	} else if err := s.orders.SetItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}

	return s.Cart(ctx, customerID)
}

// RemoveItem deletes a cart line owned by the customer regardless of its
// quantity.
func (s *OrderService) RemoveItem(ctx context.Context, customerID, itemID int64) (*CartSnapshot, error) {
	item, err := s.orders.ItemByID(ctx, itemID, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.orders.DeleteItem(ctx, item.ID); err != nil {
		return nil, err
	}
	return s.Cart(ctx, customerID)
}

// Clear empties the active cart.
func (s *OrderService) Clear(ctx context.Context, customerID int64) (*CartSnapshot, error) {
	cart, err := s.activeCart(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.orders.ClearItems(ctx, cart.ID); err != nil {
		return nil, err
	}
	return s.cartSnapshot(ctx, cart)
}

// PlaceOrder converts the active cart into a placed order. An empty cart is
// rejected with common.ErrEmptyCart.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID int64) (*OrderSnapshot, error) {
	cart, err := s.activeCart(ctx, customerID)
	if err != nil {
		return nil, err
	}
	items, err := s.orders.Items(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, common.ErrEmptyCart
	}

	at := s.now()
	if err := s.orders.MarkOrdered(ctx, cart.ID, at); err != nil {
		return nil, err
	}
	cart.IsOrdered = true
	cart.Status = models.StatusPlaced
	cart.DateOrdered = at
	return s.orderSnapshot(ctx, cart)
}

// History returns the customer's placed orders, newest first.
func (s *OrderService) History(ctx context.Context, customerID int64) ([]OrderSnapshot, error) {
	placed, err := s.orders.OrdersPlaced(ctx, customerID)
	if err != nil {
		return nil, err
	}
	snapshots := make([]OrderSnapshot, 0, len(placed))
	for i := range placed {
		snap, err := s.orderSnapshot(ctx, &placed[i])
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snap)
	}
	return snapshots, nil
}

func (s *OrderService) itemSnapshots(ctx context.Context, orderID int64) ([]ItemSnapshot, decimal.Decimal, error) {
	items, err := s.orders.Items(ctx, orderID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	snapshots := make([]ItemSnapshot, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		product, err := s.catalog.ProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		snapshots = append(snapshots, ItemSnapshot{
			ID:         item.ID,
			Product:    s.payload.productPayload(product),
			Quantity:   item.Quantity,
			TotalPrice: lineTotal,
		})
		total = total.Add(lineTotal)
	}
	return snapshots, total, nil
}

func (s *OrderService) cartSnapshot(ctx context.Context, cart *models.Order) (*CartSnapshot, error) {
	items, total, err := s.itemSnapshots(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return &CartSnapshot{
		ID:         cart.ID,
		Customer:   cart.CustomerID,
		IsOrdered:  cart.IsOrdered,
		Status:     cart.Status,
		Items:      items,
		TotalPrice: total,
	}, nil
}

func (s *OrderService) orderSnapshot(ctx context.Context, order *models.Order) (*OrderSnapshot, error) {
	items, total, err := s.itemSnapshots(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &OrderSnapshot{
		ID:          order.ID,
		Customer:    order.CustomerID,
		DateOrdered: order.DateOrdered,
		IsOrdered:   order.IsOrdered,
		Status:      order.Status,
		Items:       items,
		TotalPrice:  total,
	}, nil
}
