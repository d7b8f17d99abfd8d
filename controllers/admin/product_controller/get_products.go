package product_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

type productListQuery struct {
	Q      string `form:"q"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// GetProducts godoc
// @Summary List products (admin)
// @Description Includes inactive products. Search matches name and description.
// @Tags Admin - Products
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search"
// @Param status query string false "active or inactive"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Router /admin/produkty [get]
func (h *Handler) GetProducts(c *gin.Context) {
	var q productListQuery
	if !utils.BindQuery(c, &q) {
		return
	}
	page, limit := repository.Paging(q.Page, q.Limit, 20)

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	filter := catalog.ClearFilters()
	filter.SearchQuery = strings.TrimSpace(q.Q)
	products, total, err := h.products.List(ctx, repository.ProductQuery{
		Filter: filter,
		Status: q.Status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać produktów"))
		return
	}
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Produkty", products, models.NewPagination(page, limit, total)))
}

// GetProductByID godoc
// @Summary Get product (admin)
// @Tags Admin - Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 404 {object} models.ApiResponse
// @Router /admin/produkty/{id} [get]
func (h *Handler) GetProductByID(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "produktu")
	if !ok {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	product, err := h.products.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Nie znaleziono produktu"))
		return
	}
	if err != nil {
		h.logger.Error("failed to get product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać produktu"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Produkt", product))
}
