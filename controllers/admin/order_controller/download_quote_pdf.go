package order_controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/services"
)

// DownloadQuotePDF godoc
// @Summary Download the quote request as PDF
// @Tags Admin - Orders
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {file} binary
// @Failure 404 {object} models.ApiResponse
// @Router /admin/zamowienia/{id}/pdf [get]
func (h *Handler) DownloadQuotePDF(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}

	pdf, err := services.GenerateQuotePDF(order, h.shop)
	if err != nil {
		h.logger.Error("failed to render quote pdf", zap.String("order_number", order.OrderNumber), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się wygenerować PDF"))
		return
	}

	filename := services.QuoteFilename(order)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Length", strconv.Itoa(len(pdf)))
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
