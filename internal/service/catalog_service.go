package service

import (
	"context"
	"strings"

	"eyestyle"
	"eyestyle/internal/repository"
)

// CatalogService serves product listings.
type CatalogService struct {
	products repository.Products
}

func NewCatalogService(products repository.Products) *CatalogService {
	return &CatalogService{products: products}
}

var _ Catalog = (*CatalogService)(nil)

// Products lists the catalog, optionally filtered by category. An empty
// result is a valid empty slice, so the API layer always emits a JSON array.
func (s *CatalogService) Products(ctx context.Context, category string) ([]eyestyle.Product, error) {
	return s.products.List(ctx, strings.TrimSpace(category))
}
