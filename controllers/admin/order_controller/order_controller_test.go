package order_controller

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/waterlife-shop/waterlife-backend/cart"
	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/controllers/admin/admintest"
	"github.com/waterlife-shop/waterlife-backend/models"
)

func setup(t *testing.T) *admintest.Harness {
	t.Helper()
	f := admintest.New(t)
	h := NewHandler(f.DB.OrderRepo(), config.ShopConfig{Name: "WaterLife", StaffEmail: "biuro@waterlife.pl", QuoteValidDays: 14}, zap.NewNop())

	orders := f.Group.Group("/zamowienia")
	orders.GET("", h.GetOrders)
	orders.GET("/statystyki", h.GetOrderStats)
	orders.GET("/:id", h.GetOrderByID)
	orders.GET("/:id/pdf", h.DownloadQuotePDF)
	orders.PATCH("/:id/status", h.UpdateOrderStatus)
	return f
}

func addOrder(t *testing.T, f *admintest.Harness, lastName, email string) *models.Order {
	t.Helper()
	items := []cart.LineItem{{ID: "p1", Name: "Pompa obiegowa", Price: 650, Quantity: 2}}
	total, count := cart.Totals(items)
	o := &models.Order{
		Customer: models.QuoteCustomer{FirstName: "Jan", LastName: lastName, Email: email, Phone: "500600700"},
		Cart:     datatypes.NewJSONType(cart.Snapshot{Items: items, Total: total, ItemCount: count}),
		Total:    total,
		IsGuest:  true,
	}
	require.NoError(t, f.DB.OrderRepo().Create(context.Background(), o))
	return o
}

func TestGetOrders_FilterAndSearch(t *testing.T) {
	f := setup(t)
	addOrder(t, f, "Kowalski", "jan@kowalski.pl")
	second := addOrder(t, f, "Nowak", "jan@nowak.pl")
	f.DB.Orders[0].Status = models.OrderStatusQuoted

	w := f.Do(http.MethodGet, "/api/admin/zamowienia", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Order
	resp := f.Decode(w, &all)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")
	assert.Equal(t, 2, resp.Meta.Total)

	w = f.Do(http.MethodGet, "/api/admin/zamowienia?q=NOWAK", "")
	var found []models.Order
	f.Decode(w, &found)
	require.Len(t, found, 1)
	assert.Equal(t, second.OrderNumber, found[0].OrderNumber)

	w = f.Do(http.MethodGet, "/api/admin/zamowienia?status=quoted", "")
	var quoted []models.Order
	f.Decode(w, &quoted)
	require.Len(t, quoted, 1)
	assert.Equal(t, "Kowalski", quoted[0].Customer.LastName)

	assert.Equal(t, http.StatusBadRequest, f.Do(http.MethodGet, "/api/admin/zamowienia?status=shipped", "").Code)
}

func TestGetOrderByID(t *testing.T) {
	f := setup(t)
	o := addOrder(t, f, "Kowalski", "jan@kowalski.pl")

	w := f.Do(http.MethodGet, "/api/admin/zamowienia/"+o.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Order
	f.Decode(w, &got)
	assert.Equal(t, o.OrderNumber, got.OrderNumber)
	require.Len(t, got.Items(), 1)
	assert.Equal(t, 2, got.Items()[0].Quantity)

	assert.Equal(t, http.StatusNotFound, f.Do(http.MethodGet, "/api/admin/zamowienia/8d6f2a35-4b6e-4a44-9b0c-0d8f5e0c1b2a", "").Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := setup(t)
	o := addOrder(t, f, "Kowalski", "jan@kowalski.pl")
	path := "/api/admin/zamowienia/" + o.ID.String() + "/status"

	w := f.Do(http.MethodPatch, path, `{"status":"  Quoted "}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out models.UpdateOrderStatusResponse
	f.Decode(w, &out)
	assert.Equal(t, models.OrderStatusQuoted, out.Status)
	assert.Equal(t, o.OrderNumber, out.OrderNumber)

	entry := f.LastActivity()
	assert.Equal(t, models.ActionUpdateOrder, entry.Action)
	assert.Equal(t, o.OrderNumber, entry.ResourceName)
	assert.Contains(t, string(entry.Changes), "quoted")
}

func TestUpdateOrderStatus_CancelNeedsReason(t *testing.T) {
	f := setup(t)
	o := addOrder(t, f, "Kowalski", "jan@kowalski.pl")
	path := "/api/admin/zamowienia/" + o.ID.String() + "/status"

	assert.Equal(t, http.StatusBadRequest, f.Do(http.MethodPatch, path, `{"status":"cancelled"}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.Do(http.MethodPatch, path, `{"status":"cancelled","admin_notes":"   "}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.Do(http.MethodPatch, path, `{"status":"shipped"}`).Code)
	assert.Equal(t, models.OrderStatusPending, f.DB.Orders[0].Status)

	w := f.Do(http.MethodPatch, path, `{"status":"cancelled","admin_notes":"Klient zrezygnował"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var out models.UpdateOrderStatusResponse
	f.Decode(w, &out)
	require.NotNil(t, out.AdminNotes)
	assert.Equal(t, "Klient zrezygnował", *out.AdminNotes)

	missing := "/api/admin/zamowienia/8d6f2a35-4b6e-4a44-9b0c-0d8f5e0c1b2a/status"
	assert.Equal(t, http.StatusNotFound, f.Do(http.MethodPatch, missing, `{"status":"quoted"}`).Code)
}

func TestDownloadQuotePDF(t *testing.T) {
	f := setup(t)
	o := addOrder(t, f, "Kowalski", "jan@kowalski.pl")

	w := f.Do(http.MethodGet, "/api/admin/zamowienia/"+o.ID.String()+"/pdf", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "zapytanie-"+o.OrderNumber+".pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
	assert.Empty(t, f.DB.Activity, "downloads are not audited")
}

func TestGetOrderStats(t *testing.T) {
	f := setup(t)
	addOrder(t, f, "Kowalski", "jan@kowalski.pl")
	addOrder(t, f, "Nowak", "jan@nowak.pl")
	old := addOrder(t, f, "Wiśniewski", "ola@wisniewski.pl")
	f.DB.Orders[1].Status = models.OrderStatusQuoted
	f.DB.Orders[2].Status = models.OrderStatusCompleted
	thisMonth, _ := models.MonthBounds(time.Now())
	f.DB.Orders[2].CreatedAt = thisMonth.AddDate(0, 0, -3)
	require.Equal(t, old.ID, f.DB.Orders[2].ID)

	w := f.Do(http.MethodGet, "/api/admin/zamowienia/statystyki", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stats models.OrderStats
	f.Decode(w, &stats)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[models.OrderStatusPending])
	assert.Equal(t, 1, stats.ByStatus[models.OrderStatusQuoted])
	assert.Equal(t, 1, stats.ByStatus[models.OrderStatusCompleted])
	assert.Equal(t, 0, stats.ByStatus[models.OrderStatusCancelled])
	assert.Equal(t, 2600.0, stats.OpenValue, "completed orders are not open")
	assert.Equal(t, 2, stats.ThisMonth)
	assert.Equal(t, 1, stats.LastMonth)
	assert.Equal(t, 100.0, stats.MonthChange)
	assert.Empty(t, f.DB.Activity)
}
