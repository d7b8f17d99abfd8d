package category_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
)

// FacetInvalidator is satisfied by *cache.FacetCache.
type FacetInvalidator interface {
	Invalidate()
}

// Handler manages the two product taxonomies: categories and manufacturers.
type Handler struct {
	categories    repository.CategoryRepository
	manufacturers repository.ManufacturerRepository
	facets        FacetInvalidator
	logger        *zap.Logger
}

func NewHandler(
	categories repository.CategoryRepository,
	manufacturers repository.ManufacturerRepository,
	facets FacetInvalidator,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		categories:    categories,
		manufacturers: manufacturers,
		facets:        facets,
		logger:        logger.Named("admin-taxonomy"),
	}
}

// taxonomyMessages holds the Polish wording for one taxonomy.
type taxonomyMessages struct {
	notFound  string
	inUse     string
	duplicate string
	failed    string
}

var (
	categoryMessages = taxonomyMessages{
		notFound:  "Nie znaleziono kategorii",
		inUse:     "Kategoria ma przypisane produkty i nie może zostać usunięta",
		duplicate: "Kategoria o tym adresie (slug) już istnieje",
		failed:    "Nie udało się zapisać kategorii",
	}
	manufacturerMessages = taxonomyMessages{
		notFound:  "Nie znaleziono producenta",
		inUse:     "Producent ma przypisane produkty i nie może zostać usunięty",
		duplicate: "Producent o tym adresie (slug) już istnieje",
		failed:    "Nie udało się zapisać producenta",
	}
)

// writeError maps repository sentinels onto status codes.
func (h *Handler) writeError(c *gin.Context, msgs taxonomyMessages, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, msgs.notFound))
	case errors.Is(err, repository.ErrInUse):
		c.JSON(http.StatusConflict, models.ErrorResponse(c, msgs.inUse))
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, models.ErrorResponse(c, msgs.duplicate))
	default:
		h.logger.Error("taxonomy write failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, msgs.failed))
	}
}
