package product_controller

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/middleware"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

var errUnknownReference = errors.New("unknown reference")

// CreateProduct godoc
// @Summary Create product
// @Description Images are uploaded to Cloudinary beforehand (see upload-signature). The first image becomes the main one unless another is marked.
// @Tags Admin - Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ProductRequest true "Product"
// @Success 201 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Router /admin/produkty [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Pole name jest wymagane"))
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	if !h.checkReferences(c, ctx, req.CategoryID, req.ManufacturerID) {
		return
	}

	product := &models.Product{
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		Price:          req.Price,
		Stock:          req.Stock,
		CategoryID:     req.CategoryID,
		ManufacturerID: req.ManufacturerID,
		Images:         models.ProductImages(req.Images).Normalize(),
		Specifications: datatypes.JSONMap(req.Specifications),
		Featured:       req.Featured,
		Status:         req.Status,
	}
	if product.Status == "" {
		product.Status = catalog.StatusActive
	}

	if err := h.products.Create(ctx, product); err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się utworzyć produktu"))
		return
	}
	c.Set(middleware.ActivityResourceIDKey, product.ID.String())
	h.facets.Invalidate()

	h.respondWithProduct(c, ctx, product.ID, http.StatusCreated, "Produkt utworzony")
}

// UpdateProduct godoc
// @Summary Update product
// @Description Partial update: only fields present in the body change.
// @Tags Admin - Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param payload body models.UpdateProductRequest true "Changed fields"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/produkty/{id} [patch]
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "produktu")
	if !ok {
		return
	}
	var req models.UpdateProductRequest
	if !utils.BindJSON(c, &req) {
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
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się zaktualizować produktu"))
		return
	}
	if !h.checkReferences(c, ctx, req.CategoryID, req.ManufacturerID) {
		return
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
		product.Category = nil
	}
	if req.ManufacturerID != nil {
		product.ManufacturerID = req.ManufacturerID
		product.Manufacturer = nil
	}
	if req.Images != nil {
		product.Images = models.ProductImages(*req.Images).Normalize()
	}
	if req.Specifications != nil {
		product.Specifications = datatypes.JSONMap(*req.Specifications)
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.Status != nil {
		product.Status = *req.Status
	}
	if product.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Pole name jest wymagane"))
		return
	}

	if err := h.products.Update(ctx, product); err != nil {
		h.logger.Error("failed to update product", zap.String("product_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się zaktualizować produktu"))
		return
	}
	h.facets.Invalidate()

	h.respondWithProduct(c, ctx, id, http.StatusOK, "Produkt zaktualizowany")
}

// checkReferences answers 400 when a category or manufacturer id does not
// exist.
func (h *Handler) checkReferences(c *gin.Context, ctx context.Context, categoryID, manufacturerID *uuid.UUID) bool {
	err := h.lookupReferences(ctx, categoryID, manufacturerID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, errUnknownReference):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
	default:
		h.logger.Error("reference lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Błąd serwera"))
	}
	return false
}

func (h *Handler) lookupReferences(ctx context.Context, categoryID, manufacturerID *uuid.UUID) error {
	if categoryID != nil {
		if _, err := h.categories.Get(ctx, *categoryID); errors.Is(err, repository.ErrNotFound) {
			return &referenceError{"Wybrana kategoria nie istnieje"}
		} else if err != nil {
			return err
		}
	}
	if manufacturerID != nil {
		if _, err := h.manufacturers.Get(ctx, *manufacturerID); errors.Is(err, repository.ErrNotFound) {
			return &referenceError{"Wybrany producent nie istnieje"}
		} else if err != nil {
			return err
		}
	}
	return nil
}

type referenceError struct{ msg string }

func (e *referenceError) Error() string { return e.msg }
func (e *referenceError) Unwrap() error { return errUnknownReference }

// respondWithProduct reloads the product so the response carries its
// category and manufacturer.
func (h *Handler) respondWithProduct(c *gin.Context, ctx context.Context, id uuid.UUID, status int, msg string) {
	product, err := h.products.Get(ctx, id)
	if err != nil {
		h.logger.Warn("failed to reload product", zap.String("product_id", id.String()), zap.Error(err))
		c.JSON(status, models.SuccessResponse(c, msg, gin.H{"id": id}))
		return
	}
	c.JSON(status, models.SuccessResponse(c, msg, product))
}
