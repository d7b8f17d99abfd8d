package product_controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/services"
)

// MediaStore is satisfied by *services.CloudinaryService.
type MediaStore interface {
	RootFolder() string
	SignUpload(folder string) (services.UploadSignature, error)
	DeleteFolder(ctx context.Context, folderPath string) error
}

// FacetInvalidator is satisfied by *cache.FacetCache.
type FacetInvalidator interface {
	Invalidate()
}

type Handler struct {
	products      repository.ProductRepository
	categories    repository.CategoryRepository
	manufacturers repository.ManufacturerRepository
	media         MediaStore
	facets        FacetInvalidator
	logger        *zap.Logger
}

// NewHandler wires the back office product handlers. media may be nil when
// Cloudinary is not configured.
func NewHandler(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	manufacturers repository.ManufacturerRepository,
	media MediaStore,
	facets FacetInvalidator,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		products:      products,
		categories:    categories,
		manufacturers: manufacturers,
		media:         media,
		facets:        facets,
		logger:        logger.Named("admin-products"),
	}
}
