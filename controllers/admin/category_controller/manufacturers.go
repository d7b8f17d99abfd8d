package category_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/middleware"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

// GetManufacturers godoc
// @Summary List manufacturers
// @Tags Admin - Manufacturers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=[]models.Manufacturer}
// @Router /admin/producenci [get]
func (h *Handler) GetManufacturers(c *gin.Context) {
	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	manufacturers, err := h.manufacturers.List(ctx)
	if err != nil {
		h.writeError(c, manufacturerMessages, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Producenci", manufacturers))
}

// CreateManufacturer godoc
// @Summary Create manufacturer
// @Tags Admin - Manufacturers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ManufacturerRequest true "Manufacturer"
// @Success 201 {object} models.ApiResponse{data=models.Manufacturer}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /admin/producenci [post]
func (h *Handler) CreateManufacturer(c *gin.Context) {
	var req models.ManufacturerRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	manufacturer := &models.Manufacturer{
		Name:    strings.TrimSpace(req.Name),
		Slug:    models.Slugify(req.Slug),
		Website: req.Website,
		LogoURL: req.LogoURL,
	}
	if manufacturer.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Pole name jest wymagane"))
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	if err := h.manufacturers.Create(ctx, manufacturer); err != nil {
		h.writeError(c, manufacturerMessages, err)
		return
	}
	c.Set(middleware.ActivityResourceIDKey, manufacturer.ID.String())
	h.facets.Invalidate()
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Producent utworzony", manufacturer))
}

// UpdateManufacturer godoc
// @Summary Update manufacturer
// @Tags Admin - Manufacturers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Manufacturer ID"
// @Param payload body models.UpdateManufacturerRequest true "Changed fields"
// @Success 200 {object} models.ApiResponse{data=models.Manufacturer}
// @Failure 404 {object} models.ApiResponse
// @Router /admin/producenci/{id} [patch]
func (h *Handler) UpdateManufacturer(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "producenta")
	if !ok {
		return
	}
	var req models.UpdateManufacturerRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	manufacturer, err := h.manufacturers.Get(ctx, id)
	if err != nil {
		h.writeError(c, manufacturerMessages, err)
		return
	}
	if req.Name != nil {
		manufacturer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		manufacturer.Slug = models.Slugify(*req.Slug)
	}
	if req.Website != nil {
		manufacturer.Website = *req.Website
	}
	if req.LogoURL != nil {
		manufacturer.LogoURL = *req.LogoURL
	}
	if manufacturer.Name == "" || manufacturer.Slug == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Nazwa i slug nie mogą być puste"))
		return
	}

	if err := h.manufacturers.Update(ctx, manufacturer); err != nil {
		h.writeError(c, manufacturerMessages, err)
		return
	}
	h.facets.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Producent zaktualizowany", manufacturer))
}

// DeleteManufacturer godoc
// @Summary Delete manufacturer
// @Description Refused with 409 while products reference it.
// @Tags Admin - Manufacturers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Manufacturer ID"
// @Success 200 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /admin/producenci/{id} [delete]
func (h *Handler) DeleteManufacturer(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "producenta")
	if !ok {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	if err := h.manufacturers.Delete(ctx, id); err != nil {
		h.writeError(c, manufacturerMessages, err)
		return
	}
	h.facets.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Producent usunięty", nil))
}
