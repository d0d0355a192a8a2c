package orders

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopkart-io/shopkart/internal/common"
	"github.com/shopkart-io/shopkart/internal/server/models"
)

type InMemoryRepository struct {
	mu        sync.RWMutex
	orders    map[int64]models.Order
	items     map[int64]models.OrderItem
	nextOrder int64
	nextItem  int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[int64]models.Order),
		items:  make(map[int64]models.OrderItem),
	}
}

func (r *InMemoryRepository) ActiveCart(ctx context.Context, customerID int64) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.CustomerID == customerID && !o.IsOrdered {
			cart := o
			return &cart, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) CreateCart(ctx context.Context, customerID int64) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextOrder++
	o := models.Order{
		ID:          r.nextOrder,
		CustomerID:  customerID,
		DateOrdered: time.Now(),
		IsOrdered:   false,
		Status:      models.StatusInCart,
	}
	r.orders[o.ID] = o
	cart := o
	return &cart, nil
}

func (r *InMemoryRepository) OrdersPlaced(ctx context.Context, customerID int64) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]models.Order, 0)
	for _, o := range r.orders {
		if o.CustomerID == customerID && o.IsOrdered {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DateOrdered.After(result[j].DateOrdered)
	})
	return result, nil
}

func (r *InMemoryRepository) MarkOrdered(ctx context.Context, orderID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return common.ErrNotFound
	}
	o.IsOrdered = true
	o.Status = models.StatusPlaced
	o.DateOrdered = at
	r.orders[orderID] = o
	return nil
}

func (r *InMemoryRepository) Items(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]models.OrderItem, 0)
	for _, it := range r.items {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *InMemoryRepository) ItemByID(ctx context.Context, itemID, customerID int64) (*models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[itemID]
	if !ok {
		return nil, common.ErrNotFound
	}
	o, ok := r.orders[it.OrderID]
	if !ok || o.CustomerID != customerID {
		return nil, common.ErrNotFound
	}
	item := it
	return &item, nil
}

func (r *InMemoryRepository) FindItem(ctx context.Context, orderID, productID int64) (*models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, it := range r.items {
		if it.OrderID == orderID && it.ProductID == productID {
			item := it
			return &item, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) AddItem(ctx context.Context, orderID, productID int64, quantity int) (*models.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextItem++
	it := models.OrderItem{
		ID:        r.nextItem,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		DateAdded: time.Now(),
	}
	r.items[it.ID] = it
	item := it
	return &item, nil
}

func (r *InMemoryRepository) SetItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[itemID]
	if !ok {
		return common.ErrNotFound
	}
	it.Quantity = quantity
	r.items[itemID] = it
	return nil
}

func (r *InMemoryRepository) DeleteItem(ctx context.Context, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[itemID]; !ok {
		return common.ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *InMemoryRepository) ClearItems(ctx context.Context, orderID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, it := range r.items {
		if it.OrderID == orderID {
			delete(r.items, id)
		}
	}
	return nil
}
