package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waterlife-shop/waterlife-backend/cart"
	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/models"
)

var _ catalog.Source = (*Client)(nil)

func serve(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListProducts(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/produkty", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery, "the pipeline filters locally")
		writeJSON(w, http.StatusOK, models.ApiResponse{Success: true, Data: []catalog.Product{
			{ID: "p1", Name: "Pompa ciepła", Price: 18900, Stock: 2},
			{ID: "p2", Name: "Kocioł gazowy", Price: 6450},
		}})
	})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Pompa ciepła", products[0].Name)
	assert.False(t, products[1].InStock())
}

func TestListProducts_EmptyDataIsEmptySlice(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, models.ApiResponse{Success: true})
	})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"server error", http.StatusInternalServerError, `{"success":false,"error":"Nie udało się pobrać produktów"}`, "Nie udało się pobrać produktów"},
		{"success false on 200", http.StatusOK, `{"success":false,"message":"Coś poszło nie tak"}`, "Coś poszło nie tak"},
		{"non json", http.StatusBadGateway, `<html>bad gateway</html>`, "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := serve(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.ListProducts(context.Background())
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestSuggest_EncodesQuery(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/produkty/podpowiedzi", r.URL.Path)
		assert.Equal(t, "pompa ciepła", r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, models.ApiResponse{Success: true, Data: []catalog.Product{{ID: "p1", Name: "Pompa ciepła"}}})
	})

	got, err := c.Suggest(context.Background(), "pompa ciepła")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestProduct_NotFound(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/produkty/brak", r.URL.Path)
		writeJSON(w, http.StatusNotFound, models.ApiResponse{Error: "Nie znaleziono produktu"})
	})

	_, err := c.Product(context.Background(), "brak")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func quoteRequest() models.QuoteRequest {
	items := []cart.LineItem{{ID: "p1", Name: "Pompa obiegowa", Price: 899, Quantity: 2}}
	total, _ := cart.Totals(items)
	return models.QuoteRequest{
		Customer: models.QuoteCustomer{FirstName: "Jan", LastName: "Kowalski", Email: "jan@kowalski.pl", Phone: "500600700"},
		Items:    items,
		Total:    total,
		IsGuest:  true,
	}
}

func TestSubmitQuote(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/zapytanie", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got models.QuoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Kowalski", got.Customer.LastName)
		assert.Equal(t, 1798.0, got.Total)

		writeJSON(w, http.StatusCreated, models.QuoteResponse{Success: true, OrderID: "o1", OrderNumber: "WL-20261016-0001"})
	})

	out, err := c.SubmitQuote(context.Background(), quoteRequest())
	require.NoError(t, err)
	assert.Equal(t, "WL-20261016-0001", out.OrderNumber)
}

func TestSubmitQuote_Rejected(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusInternalServerError, models.QuoteResponse{Error: "Nie udało się zapisać zapytania. Spróbuj ponownie."})
	})

	_, err := c.SubmitQuote(context.Background(), quoteRequest())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "Spróbuj ponownie")
}

func TestSubmitCart(t *testing.T) {
	status := http.StatusInternalServerError
	var calls int
	c := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if status != http.StatusCreated {
			writeJSON(w, status, models.QuoteResponse{Error: "Spróbuj ponownie"})
			return
		}
		writeJSON(w, status, models.QuoteResponse{Success: true, OrderNumber: "WL-20261016-0002"})
	})
	ctx := context.Background()
	store := cart.Open(ctx, cart.NewMemoryBlob(), cart.StorageKey, nil)
	customer := quoteRequest().Customer

	_, err := c.SubmitCart(ctx, store, customer)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, calls, "an empty cart is not sent")

	store.AddItem(ctx, cart.LineItem{ID: "p1", Name: "Pompa obiegowa", Price: 899}, 2)
	_, err = c.SubmitCart(ctx, store, customer)
	require.Error(t, err)
	assert.Equal(t, 2, store.ItemCount(), "rejected quote keeps the cart")

	status = http.StatusCreated
	out, err := c.SubmitCart(ctx, store, customer)
	require.NoError(t, err)
	assert.Equal(t, "WL-20261016-0002", out.OrderNumber)
	assert.Empty(t, store.Items())
	assert.Equal(t, 2, calls)
}

func TestPipelineOverClient(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, models.ApiResponse{Success: true, Data: []catalog.Product{
			{ID: "p1", Name: "Pompa ciepła", Category: "pompy", Price: 18900, Stock: 1},
			{ID: "p2", Name: "Kocioł gazowy", Category: "kotly", Price: 6450, Stock: 3},
		}})
	})

	p := catalog.NewPipeline(c, nil)
	defer p.Close()
	require.NoError(t, p.Refetch(context.Background()))

	s, err := catalog.UpdateFilter(catalog.ClearFilters(), catalog.KeyCategories, []string{"kotly"})
	require.NoError(t, err)
	view := p.View(s)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p2", view.Items[0].ID)
}
