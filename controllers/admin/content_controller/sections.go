package content_controller

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

// GetSections godoc
// @Summary List homepage sections
// @Description All sections, including inactive ones, in display order.
// @Tags Admin - Content
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=[]models.HomepageSection}
// @Router /admin/tresci [get]
func (h *Handler) GetSections(c *gin.Context) {
	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	sections, err := h.content.Sections(ctx, false)
	if err != nil {
		h.logger.Error("failed to list sections", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać treści"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Sekcje strony głównej", sections))
}

// UpsertSection godoc
// @Summary Create or replace a homepage section
// @Description A section is addressed by its key ("hero", "banner-promocja"). Omitting active keeps the section visible.
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Section key"
// @Param payload body models.HomepageSectionRequest true "Section"
// @Success 200 {object} models.ApiResponse{data=models.HomepageSection}
// @Failure 400 {object} models.ApiResponse
// @Router /admin/tresci/{key} [put]
func (h *Handler) UpsertSection(c *gin.Context) {
	key := c.Param("key")
	if !sectionKey.MatchString(key) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Nieprawidłowy klucz sekcji"))
		return
	}
	var req models.HomepageSectionRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	section := &models.HomepageSection{
		Key:       key,
		Title:     strings.TrimSpace(req.Title),
		Subtitle:  strings.TrimSpace(req.Subtitle),
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		SortOrder: req.SortOrder,
		Active:    req.Active == nil || *req.Active,
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	if err := h.content.Upsert(ctx, section); err != nil {
		h.logger.Error("failed to save section", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się zapisać sekcji"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Sekcja zapisana", section))
}

// DeleteSection godoc
// @Summary Delete a homepage section
// @Tags Admin - Content
// @Produce json
// @Security BearerAuth
// @Param key path string true "Section key"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/tresci/{key} [delete]
func (h *Handler) DeleteSection(c *gin.Context) {
	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	err := h.content.Delete(ctx, c.Param("key"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Nie znaleziono sekcji"))
		return
	}
	if err != nil {
		h.logger.Error("failed to delete section", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się usunąć sekcji"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Sekcja usunięta", nil))
}
