package content_controller

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

// GetMessages godoc
// @Summary List contact messages
// @Description Newest first. unread=true hides messages already read.
// @Tags Admin - Contact
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.ContactMessage}
// @Router /admin/wiadomosci [get]
func (h *Handler) GetMessages(c *gin.Context) {
	var q models.ContactQuery
	if !utils.BindQuery(c, &q) {
		return
	}
	q.Page, q.Limit = repository.Paging(q.Page, q.Limit, 20)

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	messages, total, err := h.contact.List(ctx, q)
	if err != nil {
		h.logger.Error("failed to list messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać wiadomości"))
		return
	}
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Wiadomości", messages, models.NewPagination(q.Page, q.Limit, total)))
}

// MarkMessageRead godoc
// @Summary Mark a contact message as read
// @Tags Admin - Contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/wiadomosci/{id}/read [patch]
func (h *Handler) MarkMessageRead(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "wiadomości")
	if !ok {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	if err := h.contact.MarkRead(ctx, id); err != nil {
		h.messageError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Wiadomość oznaczona jako przeczytana", nil))
}

// DeleteMessage godoc
// @Summary Delete a contact message
// @Tags Admin - Contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/wiadomosci/{id} [delete]
func (h *Handler) DeleteMessage(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "wiadomości")
	if !ok {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	if err := h.contact.Delete(ctx, id); err != nil {
		h.messageError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Wiadomość usunięta", nil))
}

func (h *Handler) messageError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Nie znaleziono wiadomości"))
		return
	}
	h.logger.Error("contact message write failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się zapisać zmian"))
}
