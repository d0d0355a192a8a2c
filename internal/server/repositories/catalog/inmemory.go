package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/shopkart-io/shopkart/internal/common"
	"github.com/shopkart-io/shopkart/internal/server/models"
)

type InMemoryRepository struct {
	mu         sync.RWMutex
	products   map[int64]models.Product
	categories map[int64]models.Category
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		products:   make(map[int64]models.Product),
		categories: make(map[int64]models.Category),
	}
}

// Seed replaces the catalog contents. Used on startup and in tests.
func (r *InMemoryRepository) Seed(categories []models.Category, products []models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = make(map[int64]models.Category, len(categories))
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	r.products = make(map[int64]models.Product, len(products))
	for _, p := range products {
		r.products[p.ID] = p
	}
}

func (r *InMemoryRepository) Products(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *InMemoryRepository) ProductByID(ctx context.Context, id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &p, nil
}

func (r *InMemoryRepository) Categories(ctx context.Context) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	categories := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}
