package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waterlife-shop/waterlife-backend/cart"
	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/search"
)

// fakeShop serves the storefront endpoints the CLI calls.
type fakeShop struct {
	products []catalog.Product

	mu     sync.Mutex
	quotes []models.QuoteRequest
}

func (s *fakeShop) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/produkty", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, models.ApiResponse{Success: true, Data: s.products})
	})
	mux.HandleFunc("GET /api/produkty/podpowiedzi", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, models.ApiResponse{Success: true, Data: search.Suggest(s.products, r.URL.Query().Get("q"), search.MaxSuggestions)})
	})
	mux.HandleFunc("GET /api/produkty/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, p := range s.products {
			if p.ID == r.PathValue("id") {
				reply(w, http.StatusOK, models.ApiResponse{Success: true, Data: p})
				return
			}
		}
		reply(w, http.StatusNotFound, models.ApiResponse{Error: "Nie znaleziono produktu"})
	})
	mux.HandleFunc("POST /api/zapytanie", func(w http.ResponseWriter, r *http.Request) {
		var req models.QuoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			reply(w, http.StatusBadRequest, models.ApiResponse{Error: "Nieprawidłowe dane żądania"})
			return
		}
		s.mu.Lock()
		s.quotes = append(s.quotes, req)
		n := len(s.quotes)
		s.mu.Unlock()
		reply(w, http.StatusCreated, models.QuoteResponse{Success: true, OrderID: "o1", OrderNumber: fmt.Sprintf("WL-20261016-%04d", n)})
	})
	return mux
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type cli struct {
	url  string
	dir  string
	shop *fakeShop
}

func newCLI(t *testing.T, products []catalog.Product) *cli {
	t.Helper()
	shop := &fakeShop{products: products}
	srv := httptest.NewServer(shop.handler())
	t.Cleanup(srv.Close)
	return &cli{url: srv.URL, dir: t.TempDir(), shop: shop}
}

func (c *cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--api", c.url, "--cart-dir", c.dir}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "p1", Name: "Pompa ciepła Aquarea 9 kW", Category: "pompy-ciepla", CategoryName: "Pompy ciepła", Manufacturer: "panasonic", Price: 18900, Stock: 2},
		{ID: "p2", Name: "Kocioł gazowy ecoTEC", Category: "kotly", CategoryName: "Kotły", Manufacturer: "vaillant", Price: 7890, Stock: 0},
		{ID: "p3", Name: "Pompa obiegowa ALPHA2", Category: "pompy", CategoryName: "Pompy", Manufacturer: "grundfos", Price: 899, Stock: 15},
	}
}

func TestProducts_Filtered(t *testing.T) {
	c := newCLI(t, sampleProducts())

	out, err := c.run(t, "products", "--category", "kotly")
	require.NoError(t, err)
	assert.Contains(t, out, "Kocioł gazowy ecoTEC")
	assert.Contains(t, out, "7 890,00 zł")
	assert.Contains(t, out, "na zamówienie")
	assert.NotContains(t, out, "Pompa")
	assert.Contains(t, out, "z 1 produktu")

	out, err = c.run(t, "products", "--in-stock", "--max-price", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "Pompa obiegowa ALPHA2")
	assert.NotContains(t, out, "Aquarea")

	out, err = c.run(t, "products", "--search", "nic takiego")
	require.NoError(t, err)
	assert.Contains(t, out, "Brak produktów")
}

func TestProducts_Pagination(t *testing.T) {
	var products []catalog.Product
	for i := 1; i <= 30; i++ {
		products = append(products, catalog.Product{ID: fmt.Sprintf("p%02d", i), Name: fmt.Sprintf("Zawór %02d", i), Price: 10, Stock: 1})
	}
	c := newCLI(t, products)

	out, err := c.run(t, "products", "--page", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Zawór 13")
	assert.Contains(t, out, "Zawór 24")
	assert.NotContains(t, out, "Zawór 25")
	assert.Contains(t, out, "Strony: 1 [2] 3")

	out, err = c.run(t, "products", "--page", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Brak produktów")
}

func TestPageSelector(t *testing.T) {
	assert.Equal(t, "Strony: 1 … 4 [5] 6 … 12", pageSelector(5, 12))
	assert.Equal(t, "Strony: [1] 2 … 12", pageSelector(1, 12))
}

func TestSearch(t *testing.T) {
	c := newCLI(t, sampleProducts())

	out, err := c.run(t, "search", "pompa")
	require.NoError(t, err)
	assert.Contains(t, out, "Pompa ciepła Aquarea 9 kW")
	assert.Contains(t, out, "Pompa obiegowa ALPHA2")
	assert.Contains(t, out, "→ /szukaj?q=pompa")

	out, err = c.run(t, "search", "pompa", "--select", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "> Pompa obiegowa ALPHA2")
	assert.Contains(t, out, "→ /produkty/p3")

	out, err = c.run(t, "search", "--local", "--select", "9", "kot")
	require.NoError(t, err)
	assert.Contains(t, out, "→ /produkty/p2", "highlight stops at the last row")

	out, err = c.run(t, "search", "k")
	require.NoError(t, err)
	assert.Contains(t, out, "co najmniej 2 znaki")
}

func TestCartAndQuote(t *testing.T) {
	c := newCLI(t, sampleProducts())

	_, err := c.run(t, "cart", "add", "p3", "2")
	require.NoError(t, err)
	_, err = c.run(t, "cart", "add", "p3")
	require.NoError(t, err)
	out, err := c.run(t, "cart", "add", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "Razem: 21 597,00 zł (4 szt.)")

	_, err = os.Stat(filepath.Join(c.dir, cart.StorageKey+".json"))
	require.NoError(t, err, "cart persisted under the storage key")

	out, err = c.run(t, "cart", "set", "p1", "0")
	require.NoError(t, err)
	assert.NotContains(t, out, "Aquarea")
	assert.Contains(t, out, "Razem: 2 697,00 zł (3 szt.)")

	_, err = c.run(t, "cart", "add", "brak")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nie znaleziono produktu")

	out, err = c.run(t, "quote", "--first-name", "Jan", "--last-name", "Kowalski", "--email", "jan@kowalski.pl", "--phone", "500600700", "--company", "  ")
	require.NoError(t, err)
	assert.Contains(t, out, "WL-20261016-0001")

	require.Len(t, c.shop.quotes, 1)
	q := c.shop.quotes[0]
	assert.Equal(t, "Kowalski", q.Customer.LastName)
	assert.Nil(t, q.Customer.Company)
	require.Len(t, q.Items, 1)
	assert.Equal(t, 3, q.Items[0].Quantity)
	assert.Equal(t, 2697.0, q.Total)
	assert.True(t, q.IsGuest)

	out, err = c.run(t, "cart")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Koszyk jest pusty"), "cart cleared after the quote")

	_, err = c.run(t, "quote", "--first-name", "Jan", "--last-name", "Kowalski", "--email", "jan@kowalski.pl", "--phone", "500600700")
	require.Error(t, err)
	assert.Len(t, c.shop.quotes, 1)
}
