package product_controller

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/search"
)

// GetSuggestions godoc
// @Summary Search suggestions
// @Description Up to 5 active products whose name, description or category contains q. Queries shorter than 2 characters return an empty list.
// @Tags Storefront - Products
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} models.ApiResponse{data=[]catalog.Product}
// @Failure 500 {object} models.ApiResponse
// @Router /produkty/podpowiedzi [get]
func (h *Handler) GetSuggestions(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if utf8.RuneCountInString(q) < search.MinQueryLength {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Podpowiedzi", []catalog.Product{}))
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	products, err := h.products.Suggest(ctx, q, search.MaxSuggestions)
	if err != nil {
		h.logger.Error("suggest failed", zap.String("q", q), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać podpowiedzi"))
		return
	}
	if len(products) > search.MaxSuggestions {
		products = products[:search.MaxSuggestions]
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Podpowiedzi", toCatalog(products)))
}
