package product_controller

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

// DeleteProduct godoc
// @Summary Delete product
// @Description Deletes the product and its Cloudinary media folder. A media cleanup failure is logged and does not fail the request.
// @Tags Admin - Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /admin/produkty/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "produktu")
	if !ok {
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
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się usunąć produktu"))
		return
	}

	if err := h.products.Delete(ctx, id); err != nil {
		h.logger.Error("failed to delete product", zap.String("product_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się usunąć produktu"))
		return
	}
	h.facets.Invalidate()

	if h.media != nil {
		if err := h.media.DeleteFolder(ctx, product.MediaFolder(h.media.RootFolder())); err != nil {
			h.logger.Warn("media folder not deleted", zap.String("product_id", id.String()), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Produkt usunięty", nil))
}

type uploadSignatureRequest struct {
	ProductID string `json:"product_id" binding:"omitempty,uuid"`
}

// GetUploadSignature godoc
// @Summary Sign a direct Cloudinary upload
// @Description Images for an existing product go to its media folder; new products upload into a staging folder.
// @Tags Admin - Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body uploadSignatureRequest false "Target product"
// @Success 200 {object} models.ApiResponse{data=services.UploadSignature}
// @Failure 503 {object} models.ApiResponse "Cloudinary not configured"
// @Router /admin/produkty/upload-signature [post]
func (h *Handler) GetUploadSignature(c *gin.Context) {
	if h.media == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Przesyłanie zdjęć jest niedostępne"))
		return
	}

	var req uploadSignatureRequest
	if c.Request.ContentLength > 0 && !utils.BindJSON(c, &req) {
		return
	}

	folder := h.media.RootFolder() + "/staging"
	if req.ProductID != "" {
		folder = h.media.RootFolder() + "/" + req.ProductID
	}

	sig, err := h.media.SignUpload(folder)
	if err != nil {
		h.logger.Error("failed to sign upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się przygotować przesyłania"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Podpis przesyłania", sig))
}
