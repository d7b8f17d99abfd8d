package cart_controller

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/cart"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

// Handler exposes the server-side cart session. The cart id lives in the
// cart_id cookie; the items live in the persister under cart.SessionKey.
type Handler struct {
	locks    cart.KeyLocks
	carts    cart.Persister
	products repository.ProductRepository
	secure   bool
	logger   *zap.Logger
}

func NewHandler(carts cart.Persister, products repository.ProductRepository, secureCookies bool, logger *zap.Logger) *Handler {
	return &Handler{carts: carts, products: products, secure: secureCookies, logger: logger.Named("cart")}
}

// AddItemRequest is the POST /api/koszyk body. Name and price come from the
// catalog, not from the client.
type AddItemRequest struct {
	ProductID string `json:"id" binding:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// open returns the caller's cart locked against other requests for the same
// cart id. The caller must call release once it is done with the store. With
// create set, a cart id is issued when the request has none.
func (h *Handler) open(c *gin.Context, ctx context.Context, create bool) (store *cart.Store, release func()) {
	cartID, err := c.Cookie(cart.SessionCookie)
	if err != nil || uuid.Validate(cartID) != nil {
		if !create {
			return cart.Open(ctx, emptyBlob{}, cart.StorageKey, h.logger), func() {}
		}
		cartID = uuid.NewString()
	}
	// Every write slides the cookie expiry along with the Redis TTL.
	if create {
		utils.SetCookie(c, cart.SessionCookie, cartID, int(cart.SessionTTL/time.Second), h.secure)
	}
	key := cart.SessionKey(cartID)
	release = h.locks.Lock(key)
	return cart.Open(ctx, h.carts, key, h.logger), release
}

// emptyBlob backs the read-only view of a cart that does not exist yet.
type emptyBlob struct{}

func (emptyBlob) Load(context.Context, string) ([]byte, error) { return nil, nil }
func (emptyBlob) Save(context.Context, string, []byte) error   { return nil }
