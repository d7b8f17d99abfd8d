package cart_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/cart"
	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

// GetCart godoc
// @Summary Current cart
// @Tags Storefront - Cart
// @Produce json
// @Success 200 {object} models.ApiResponse{data=cart.Snapshot}
// @Router /koszyk [get]
func (h *Handler) GetCart(c *gin.Context) {
	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	store, release := h.open(c, ctx, false)
	defer release()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Koszyk", store.Snapshot()))
}

// AddItem godoc
// @Summary Add a product to the cart
// @Description Adding a product already in the cart increases its quantity. A quantity below 1 adds one unit.
// @Tags Storefront - Cart
// @Accept json
// @Produce json
// @Param payload body AddItemRequest true "Product and quantity"
// @Success 200 {object} models.ApiResponse{data=cart.Snapshot}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /koszyk [post]
func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	product, err := h.products.Get(ctx, uuid.MustParse(req.ProductID))
	if errors.Is(err, repository.ErrNotFound) || (err == nil && product.Status != catalog.StatusActive) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Nie znaleziono produktu"))
		return
	}
	if err != nil {
		h.logger.Error("product lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się dodać produktu do koszyka"))
		return
	}

	view := product.ToCatalog()
	store, release := h.open(c, ctx, true)
	defer release()
	store.AddItem(ctx, cart.LineItem{
		ID:       view.ID,
		Name:     view.Name,
		Price:    view.Price,
		ImageURL: view.MainImage(),
	}, req.Quantity)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Dodano do koszyka", store.Snapshot()))
}

// UpdateQuantity godoc
// @Summary Change a line item quantity
// @Description A quantity of 0 or less removes the item.
// @Tags Storefront - Cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param payload body UpdateQuantityRequest true "New quantity"
// @Success 200 {object} models.ApiResponse{data=cart.Snapshot}
// @Failure 400 {object} models.ApiResponse
// @Router /koszyk/{id} [patch]
func (h *Handler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	store, release := h.open(c, ctx, true)
	defer release()
	store.UpdateQuantity(ctx, c.Param("id"), req.Quantity)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Koszyk zaktualizowany", store.Snapshot()))
}

// RemoveItem godoc
// @Summary Remove a line item
// @Description Removing an item that is not in the cart is a no-op.
// @Tags Storefront - Cart
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=cart.Snapshot}
// @Router /koszyk/{id} [delete]
func (h *Handler) RemoveItem(c *gin.Context) {
	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	store, release := h.open(c, ctx, true)
	defer release()
	store.RemoveItem(ctx, c.Param("id"))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Usunięto z koszyka", store.Snapshot()))
}

// ClearCart godoc
// @Summary Empty the cart
// @Tags Storefront - Cart
// @Produce json
// @Success 200 {object} models.ApiResponse{data=cart.Snapshot}
// @Router /koszyk [delete]
func (h *Handler) ClearCart(c *gin.Context) {
	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	store, release := h.open(c, ctx, true)
	defer release()
	store.Clear(ctx)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Koszyk wyczyszczony", store.Snapshot()))
}
