package product_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
)

// GetProducts godoc
// @Summary List storefront products
// @Description Returns active products matching the filters. Without page the whole filtered list is returned; with page the list is paginated and meta is set.
// @Tags Storefront - Products
// @Produce json
// @Param category query []string false "Category slug (repeatable or comma separated)" collectionFormat(multi)
// @Param manufacturer query []string false "Manufacturer slug (repeatable or comma separated)" collectionFormat(multi)
// @Param minPrice query number false "Minimum price (inclusive)"
// @Param maxPrice query number false "Maximum price (inclusive)"
// @Param inStock query bool false "Only products with stock > 0"
// @Param search query string false "Case-insensitive match on name or description"
// @Param featured query bool false "Only featured products"
// @Param page query int false "Page number (enables pagination)"
// @Param limit query int false "Page size" default(12)
// @Success 200 {object} models.ApiResponse{data=[]catalog.Product}
// @Failure 500 {object} models.ApiResponse
// @Router /produkty [get]
func (h *Handler) GetProducts(c *gin.Context) {
	query := c.Request.URL.Query()

	q := repository.ProductQuery{
		Filter: catalog.ParseQuery(query),
		Status: catalog.StatusActive,
	}
	if featured, err := strconv.ParseBool(query.Get("featured")); err == nil {
		q.Featured = &featured
	}

	paginated := query.Has("page")
	if paginated {
		limit, _ := strconv.Atoi(query.Get("limit"))
		q.Page, q.Limit = repository.Paging(q.Filter.CurrentPage, limit, catalog.ItemsPerPage)
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	products, total, err := h.products.List(ctx, q)
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać produktów"))
		return
	}

	data := toCatalog(products)
	if paginated {
		c.JSON(http.StatusOK, models.PaginatedResponse(c, "Produkty pobrane", data, models.NewPagination(q.Page, q.Limit, total)))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Produkty pobrane", data))
}
