package content_controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

// BestsellerLimit caps the featured products shown on the homepage.
const BestsellerLimit = 8

// ContactNotifier is satisfied by *services.Notifier.
type ContactNotifier interface {
	ContactNotification(ctx context.Context, msg *models.ContactMessage) error
}

type Handler struct {
	content  repository.ContentRepository
	contact  repository.ContactRepository
	products repository.ProductRepository
	notifier ContactNotifier
	logger   *zap.Logger

	async func(func())
}

func NewHandler(
	content repository.ContentRepository,
	contact repository.ContactRepository,
	products repository.ProductRepository,
	notifier ContactNotifier,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		content:  content,
		contact:  contact,
		products: products,
		notifier: notifier,
		logger:   logger.Named("content"),
		async:    func(fn func()) { go fn() },
	}
}

// GetHomepage godoc
// @Summary Homepage content
// @Description Active hero and banner sections in display order, plus the featured ("bestseller") products.
// @Tags Storefront - Content
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.HomepageResponse}
// @Router /strona-glowna [get]
func (h *Handler) GetHomepage(c *gin.Context) {
	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	sections, err := h.content.Sections(ctx, true)
	if err != nil {
		h.logger.Error("failed to load homepage sections", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać strony głównej"))
		return
	}

	featured := true
	products, _, err := h.products.List(ctx, repository.ProductQuery{
		Featured: &featured,
		Status:   catalog.StatusActive,
		Page:     1,
		Limit:    BestsellerLimit,
	})
	if err != nil {
		h.logger.Error("failed to load bestsellers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać strony głównej"))
		return
	}

	bestsellers := make([]catalog.Product, 0, len(products))
	for i := range products {
		bestsellers = append(bestsellers, products[i].ToCatalog())
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Strona główna", models.HomepageResponse{
		Sections:    sections,
		Bestsellers: bestsellers,
	}))
}

// SubmitContact godoc
// @Summary Send a contact form message
// @Description Stores the message and forwards it to the staff inbox. A failed email does not fail the request.
// @Tags Storefront - Content
// @Accept json
// @Produce json
// @Param payload body models.ContactRequest true "Message"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Router /kontakt [post]
func (h *Handler) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: strings.TrimSpace(req.Message),
	}
	if msg.Name == "" || len([]rune(msg.Message)) < 10 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Wiadomość musi mieć co najmniej 10 znaków"))
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	if err := h.contact.Create(ctx, msg); err != nil {
		h.logger.Error("failed to save contact message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się wysłać wiadomości"))
		return
	}

	sent := *msg
	h.async(func() {
		ctx, cancel := config.WithTimeout()
		defer cancel()
		if err := h.notifier.ContactNotification(ctx, &sent); err != nil {
			h.logger.Error("contact notification failed", zap.String("message_id", sent.ID.String()), zap.Error(err))
		}
	})

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Dziękujemy, odpowiemy najszybciej jak to możliwe", nil))
}
