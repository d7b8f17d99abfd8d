package product_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
)

// GetProductByID godoc
// @Summary Get single product details for storefront
// @Description Inactive and unknown products both answer 404.
// @Tags Storefront - Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=catalog.Product}
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /produkty/{id} [get]
func (h *Handler) GetProductByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Nie znaleziono produktu"))
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	product, err := h.products.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && product.Status != catalog.StatusActive) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Nie znaleziono produktu"))
		return
	}
	if err != nil {
		h.logger.Error("get product failed", zap.String("product_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać produktu"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Produkt pobrany", product.ToCatalog()))
}
