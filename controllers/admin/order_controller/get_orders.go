package order_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

// GetOrders godoc
// @Summary List quote requests
// @Description Newest first. q matches the order number, customer email or last name.
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status" Enums(pending, processing, quoted, completed, cancelled)
// @Param q query string false "Search"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Order}
// @Failure 400 {object} models.ApiResponse
// @Router /admin/zamowienia [get]
func (h *Handler) GetOrders(c *gin.Context) {
	var q models.AdminOrderQuery
	if !utils.BindQuery(c, &q) {
		return
	}
	q.Page, q.Limit = repository.Paging(q.Page, q.Limit, 20)

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	orders, total, err := h.orders.List(ctx, q)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać zamówień"))
		return
	}
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Zamówienia", orders, models.NewPagination(q.Page, q.Limit, total)))
}

// GetOrderByID godoc
// @Summary Quote request details
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 404 {object} models.ApiResponse
// @Router /admin/zamowienia/{id} [get]
func (h *Handler) GetOrderByID(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Zamówienie", order))
}

// load resolves :id, writing the error response itself when it fails.
func (h *Handler) load(c *gin.Context) (*models.Order, bool) {
	id, ok := utils.ParseIDParam(c, "zamówienia")
	if !ok {
		return nil, false
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	order, err := h.orders.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Nie znaleziono zamówienia"))
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to get order", zap.String("order_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać zamówienia"))
		return nil, false
	}
	return order, true
}
