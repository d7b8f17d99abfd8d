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

// GetCategories godoc
// @Summary List categories
// @Description Each category carries the number of products assigned to it.
// @Tags Admin - Categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=[]models.CategoryWithProducts}
// @Router /admin/kategorie [get]
func (h *Handler) GetCategories(c *gin.Context) {
	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	categories, err := h.categories.List(ctx)
	if err != nil {
		h.writeError(c, categoryMessages, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Kategorie", categories))
}

// CreateCategory godoc
// @Summary Create category
// @Description The slug is derived from the name when omitted.
// @Tags Admin - Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CategoryRequest true "Category"
// @Success 201 {object} models.ApiResponse{data=models.Category}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "Slug taken"
// @Router /admin/kategorie [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        models.Slugify(req.Slug),
		Description: strings.TrimSpace(req.Description),
		SortOrder:   req.SortOrder,
	}
	if category.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Pole name jest wymagane"))
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	if err := h.categories.Create(ctx, category); err != nil {
		h.writeError(c, categoryMessages, err)
		return
	}
	c.Set(middleware.ActivityResourceIDKey, category.ID.String())
	h.facets.Invalidate()
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Kategoria utworzona", category))
}

// UpdateCategory godoc
// @Summary Update category
// @Tags Admin - Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param payload body models.UpdateCategoryRequest true "Changed fields"
// @Success 200 {object} models.ApiResponse{data=models.Category}
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /admin/kategorie/{id} [patch]
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "kategorii")
	if !ok {
		return
	}
	var req models.UpdateCategoryRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	category, err := h.categories.Get(ctx, id)
	if err != nil {
		h.writeError(c, categoryMessages, err)
		return
	}
	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		category.Slug = models.Slugify(*req.Slug)
	}
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if category.Name == "" || category.Slug == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Nazwa i slug nie mogą być puste"))
		return
	}

	if err := h.categories.Update(ctx, category); err != nil {
		h.writeError(c, categoryMessages, err)
		return
	}
	h.facets.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Kategoria zaktualizowana", category))
}

// DeleteCategory godoc
// @Summary Delete category
// @Description Refused with 409 while products are assigned to it.
// @Tags Admin - Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /admin/kategorie/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "kategorii")
	if !ok {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	if err := h.categories.Delete(ctx, id); err != nil {
		h.writeError(c, categoryMessages, err)
		return
	}
	h.facets.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Kategoria usunięta", nil))
}
