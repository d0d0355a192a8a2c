package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopkart-io/shopkart/internal/server/config"
	"github.com/shopkart-io/shopkart/internal/server/models"
	"github.com/shopkart-io/shopkart/internal/server/repositories/catalog"
)

// ProductPayload is the serialized form of a product. Category is flattened
// to its name and money fields marshal as quoted decimal strings.
type ProductPayload struct {
	ID          int64           `json:"id"`
	Category    string          `json:"category"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	InStock     bool            `json:"in_stock"`
	Quantity    int             `json:"quantity"`
	Rating      decimal.Decimal `json:"rating"`
}

type CategoryPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CatalogService struct {
	catalog      catalog.Repository
	mediaBaseURL string
}

func NewCatalogService(repo catalog.Repository, cfg *config.Config) *CatalogService {
	return &CatalogService{catalog: repo, mediaBaseURL: cfg.MediaBaseURL}
}

func (s *CatalogService) productPayload(p *models.Product) ProductPayload {
	return ProductPayload{
		ID:          p.ID,
		Category:    p.CategoryName,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       s.imageURL(p.Image),
		InStock:     p.InStock,
		Quantity:    p.Quantity,
		Rating:      p.Rating,
	}
}

// imageURL prefixes stored relative image paths with the media base URL when
// one is configured.
func (s *CatalogService) imageURL(path string) string {
	if path == "" || s.mediaBaseURL == "" {
		return path
	}
	return strings.TrimSuffix(s.mediaBaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

func (s *CatalogService) Products(ctx context.Context) ([]ProductPayload, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	payloads := make([]ProductPayload, 0, len(products))
	for i := range products {
		payloads = append(payloads, s.productPayload(&products[i]))
	}
	return payloads, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]CategoryPayload, error) {
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, err
	}
	payloads := make([]CategoryPayload, 0, len(categories))
	for _, c := range categories {
		payloads = append(payloads, CategoryPayload{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	return payloads, nil
}
