package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
)

// GetFilterMetadata godoc
// @Summary Filter sidebar metadata
// @Description Categories and manufacturers with product counts, the price range and stock counts of active products. Cached for a few minutes.
// @Tags Storefront - Products
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.FilterMetadata}
// @Failure 500 {object} models.ApiResponse
// @Router /produkty/filtry [get]
func (h *Handler) GetFilterMetadata(c *gin.Context) {
	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	meta, err := h.facets.Get(ctx)
	if err != nil {
		h.logger.Error("facets failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać filtrów"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filtry pobrane", meta))
}
