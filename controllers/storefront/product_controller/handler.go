package product_controller

import (
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/cache"
	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
)

// Handler serves the public catalog endpoints.
type Handler struct {
	products repository.ProductRepository
	facets   *cache.FacetCache
	logger   *zap.Logger
}

func NewHandler(products repository.ProductRepository, facets *cache.FacetCache, logger *zap.Logger) *Handler {
	return &Handler{products: products, facets: facets, logger: logger.Named("storefront.products")}
}

func toCatalog(products []models.Product) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for i := range products {
		out = append(out, products[i].ToCatalog())
	}
	return out
}
