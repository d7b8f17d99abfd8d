package order_controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
)

// GetOrderStats godoc
// @Summary Quote request overview
// @Description All-time count per status, value of open requests and this month's count with the change against last month.
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.OrderStats}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/zamowienia/statystyki [get]
func (h *Handler) GetOrderStats(c *gin.Context) {
	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	stats, err := h.orders.Stats(ctx, time.Now())
	if err != nil {
		h.logger.Error("order stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać statystyk"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Statystyki zamówień", stats))
}
