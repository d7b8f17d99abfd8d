package quote_controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/cart"
	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/middleware"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository/repotest"
	"github.com/waterlife-shop/waterlife-backend/services"
)

type recordingNotifier struct {
	staff     []*models.Order
	pdfs      [][]byte
	confirmed []*models.Order
	fail      bool
}

func (r *recordingNotifier) QuoteStaffNotification(_ context.Context, o *models.Order, pdf []byte) error {
	r.staff = append(r.staff, o)
	r.pdfs = append(r.pdfs, pdf)
	if r.fail {
		return errors.New("smtp down")
	}
	return nil
}

func (r *recordingNotifier) QuoteConfirmation(_ context.Context, o *models.Order) error {
	r.confirmed = append(r.confirmed, o)
	if r.fail {
		return errors.New("smtp down")
	}
	return nil
}

type fixture struct {
	router   *gin.Engine
	db       *repotest.DB
	carts    *cart.MemoryBlob
	notifier *recordingNotifier
	jwt      *services.JWTService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwt, err := services.NewJWTService(config.JWTConfig{Secret: "s", AdminSecret: "a", Expiry: time.Hour, AdminExpiry: time.Hour})
	require.NoError(t, err)

	f := &fixture{db: repotest.New(), carts: cart.NewMemoryBlob(), notifier: &recordingNotifier{}, jwt: jwt}
	h := NewHandler(f.db.OrderRepo(), f.carts, f.notifier, config.ShopConfig{Name: "WaterLife", StaffEmail: "biuro@waterlife.pl"}, zap.NewNop())
	h.async = func(fn func()) { fn() }

	f.router = gin.New()
	f.router.POST("/api/zapytanie", middleware.OptionalAuth(jwt), h.SubmitQuote)
	return f
}

const validBody = `{
	"customer": {"firstName": " Jan ", "lastName": "Kowalski", "email": "Jan@Example.com", "phone": "600100200", "company": "  "},
	"items": [
		{"id": "p1", "name": "Kocioł", "price": 4500, "quantity": 1},
		{"id": "p2", "name": "Zawór", "price": 100.5, "quantity": 2}
	],
	"total": 4701,
	"isGuest": true
}`

func (f *fixture) post(body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/zapytanie", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	f.router.ServeHTTP(w, req)
	return w
}

func TestSubmitQuote_PersistsOrderAndNotifies(t *testing.T) {
	f := setup(t)

	w := f.post(validBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.OrderID)
	assert.True(t, strings.HasPrefix(resp.OrderNumber, "WL-"))

	require.Len(t, f.db.Orders, 1)
	order := f.db.Orders[0]
	assert.Equal(t, resp.OrderID, order.ID.String())
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.IsGuest)
	assert.Nil(t, order.UserID)
	assert.Equal(t, "Jan", order.Customer.FirstName)
	assert.Equal(t, "jan@example.com", order.Customer.Email)
	assert.Nil(t, order.Customer.Company, "blank optional fields are dropped")

	snapshot := order.Cart.Data()
	assert.Equal(t, 4701.0, snapshot.Total)
	assert.Equal(t, 3, snapshot.ItemCount)
	assert.Len(t, snapshot.Items, 2)
	assert.False(t, snapshot.Timestamp.IsZero())

	require.Len(t, f.notifier.staff, 1)
	require.Len(t, f.notifier.confirmed, 1)
	assert.True(t, strings.HasPrefix(string(f.notifier.pdfs[0]), "%PDF"))
}

func TestSubmitQuote_RecomputesTotal(t *testing.T) {
	f := setup(t)

	w := f.post(strings.Replace(validBody, `"total": 4701`, `"total": 1`, 1))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 4701.0, f.db.Orders[0].Total)
}

func TestSubmitQuote_EmailFailureStillSucceeds(t *testing.T) {
	f := setup(t)
	f.notifier.fail = true

	w := f.post(validBody)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, f.db.Orders, 1)
}

func TestSubmitQuote_Validation(t *testing.T) {
	f := setup(t)

	cases := map[string]string{
		"no items":      `{"customer": {"firstName":"Jan","lastName":"K","email":"jan@example.com","phone":"1"}, "items": [], "total": 0}`,
		"bad email":     strings.Replace(validBody, "Jan@Example.com", "jan", 1),
		"zero quantity": strings.Replace(validBody, `"quantity": 1`, `"quantity": 0`, 1),
		"blank name":    strings.Replace(validBody, `" Jan "`, `"   "`, 1),
		"malformed":     `{"customer":`,
	}
	for name, body := range cases {
		w := f.post(body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)

		var resp models.ApiResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), name)
		assert.False(t, resp.Success, name)
		assert.NotEmpty(t, resp.Error, name)
	}
	assert.Empty(t, f.db.Orders)
	assert.Empty(t, f.notifier.staff)
}

func TestSubmitQuote_AttachesSignedInUserAndClearsCart(t *testing.T) {
	f := setup(t)
	userID := uuid.New()
	token, err := f.jwt.GenerateUserToken(userID, "jan@example.com", "Jan")
	require.NoError(t, err)

	cartID := uuid.NewString()
	store := cart.Open(context.Background(), f.carts, cart.SessionKey(cartID), zap.NewNop())
	store.AddItem(context.Background(), cart.LineItem{ID: "p1", Name: "Kocioł", Price: 4500}, 1)

	w := f.post(validBody,
		&http.Cookie{Name: middleware.AuthCookie, Value: token},
		&http.Cookie{Name: cart.SessionCookie, Value: cartID},
	)
	require.Equal(t, http.StatusCreated, w.Code)

	order := f.db.Orders[0]
	require.NotNil(t, order.UserID)
	assert.Equal(t, userID, *order.UserID)
	assert.False(t, order.IsGuest)

	reopened := cart.Open(context.Background(), f.carts, cart.SessionKey(cartID), zap.NewNop())
	assert.Empty(t, reopened.Items())
	assert.Zero(t, reopened.Total())
}
