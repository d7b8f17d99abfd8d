package repository

import (
	"context"

	"github.com/waterlife-shop/waterlife-backend/catalog"
)

// CatalogSource feeds a catalog.Pipeline straight from the database with
// what GET /api/produkty returns: every active product, unfiltered.
type CatalogSource struct {
	Products ProductRepository
}

func (s CatalogSource) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	products, _, err := s.Products.List(ctx, ProductQuery{Status: catalog.StatusActive})
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Product, len(products))
	for i := range products {
		out[i] = products[i].ToCatalog()
	}
	return out, nil
}
