package catalog

import (
	"context"
	"fmt"
)

// Service exposes catalog reads to the HTTP layer.
type Service struct {
	reader Reader
}

// NewService constructs a catalog service.
func NewService(reader Reader) *Service {
	return &Service{reader: reader}
}

// Get returns the product with id.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	p, err := s.reader.GetProduct(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List returns the whole catalog.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	products, err := s.reader.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
