package admin_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

// GetActivityLogs godoc
// @Summary List admin activity
// @Description Newest first. Filter by admin, resource type or action.
// @Tags Admin - Activity
// @Produce json
// @Security BearerAuth
// @Param admin_id query string false "Admin ID"
// @Param resource_type query string false "product, category, manufacturer, order, content, contact_message"
// @Param action query string false "e.g. updated_order"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Items per page" default(50)
// @Success 200 {object} models.ApiResponse{data=[]models.ActivityLogResponse}
// @Router /admin/aktywnosc [get]
func (h *Handler) GetActivityLogs(c *gin.Context) {
	var q models.ActivityQuery
	if !utils.BindQuery(c, &q) {
		return
	}
	q.Page, q.Limit = repository.Paging(q.Page, q.Limit, 50)

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	logs, total, err := h.activity.List(ctx, q)
	if err != nil {
		h.logger.Error("failed to list activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać historii zmian"))
		return
	}

	out := make([]models.ActivityLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, logs[i].ToResponse())
	}
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Historia zmian", out, models.NewPagination(q.Page, q.Limit, total)))
}
