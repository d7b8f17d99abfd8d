package order_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

// UpdateOrderStatus godoc
// @Summary Update quote request status
// @Description admin_notes is optional for every status but required when cancelling (the reason).
// @Tags Admin - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param payload body models.UpdateOrderStatusRequest true "Update payload"
// @Success 200 {object} models.ApiResponse{data=models.UpdateOrderStatusResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/zamowienia/{id}/status [patch]
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "zamówienia")
	if !ok {
		return
	}
	var req models.UpdateOrderStatusRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if _, known := models.OrderStatusLabels[req.Status]; !known {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Nieznany status zamówienia"))
		return
	}
	if req.AdminNotes != nil {
		notes := strings.TrimSpace(*req.AdminNotes)
		req.AdminNotes = &notes
	}
	if req.Status == models.OrderStatusCancelled && (req.AdminNotes == nil || *req.AdminNotes == "") {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Podaj powód anulowania (admin_notes)"))
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	order, err := h.orders.UpdateStatus(ctx, id, req.Status, req.AdminNotes)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Nie znaleziono zamówienia"))
		return
	}
	if err != nil {
		h.logger.Error("failed to update order status", zap.String("order_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się zaktualizować zamówienia"))
		return
	}

	h.logger.Info("order status changed",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", order.Status),
	)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Status zamówienia zaktualizowany", models.UpdateOrderStatusResponse{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		AdminNotes:  order.AdminNotes,
	}))
}
