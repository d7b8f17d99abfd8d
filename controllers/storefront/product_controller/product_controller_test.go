package product_controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/cache"
	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository/repotest"
)

type envelope struct {
	Success bool               `json:"success"`
	Data    json.RawMessage    `json:"data"`
	Error   string             `json:"error"`
	Meta    *models.Pagination `json:"meta"`
}

func setup(t *testing.T) (*gin.Engine, *repotest.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := repotest.New()
	boilers := db.AddCategory("Kotły gazowe")
	pumps := db.AddCategory("Pompy")
	vaillant := db.AddManufacturer("Vaillant")
	grundfos := db.AddManufacturer("Grundfos")

	db.AddProduct("Kocioł kondensacyjny 24 kW", 4500, 3, boilers, vaillant)
	db.AddProduct("Kocioł dwufunkcyjny 28 kW", 5200, 0, boilers, vaillant)
	db.AddProduct("Pompa obiegowa Alpha2", 890, 10, pumps, grundfos)
	hidden := db.AddProduct("Pompa wycofana", 100, 1, pumps, grundfos)
	hidden.Status = catalog.StatusInactive

	products := db.ProductRepo()
	facets := cache.NewFacetCache(products.Facets, time.Minute, zap.NewNop())
	t.Cleanup(facets.Close)

	h := NewHandler(products, facets, zap.NewNop())
	r := gin.New()
	r.GET("/api/produkty", h.GetProducts)
	r.GET("/api/produkty/podpowiedzi", h.GetSuggestions)
	r.GET("/api/produkty/filtry", h.GetFilterMetadata)
	r.GET("/api/produkty/:id", h.GetProductByID)
	return r, db
}

func get(t *testing.T, r *gin.Engine, path string) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func names(t *testing.T, raw json.RawMessage) []string {
	t.Helper()
	var products []catalog.Product
	require.NoError(t, json.Unmarshal(raw, &products))
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestGetProducts_FullListWithoutPage(t *testing.T) {
	r, _ := setup(t)

	code, env := get(t, r, "/api/produkty")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Nil(t, env.Meta)
	assert.Len(t, names(t, env.Data), 3, "inactive products are hidden")
}

func TestGetProducts_Filters(t *testing.T) {
	r, _ := setup(t)

	_, env := get(t, r, "/api/produkty?category=kotly-gazowe&inStock=true")
	assert.Equal(t, []string{"Kocioł kondensacyjny 24 kW"}, names(t, env.Data))

	_, env = get(t, r, "/api/produkty?manufacturer=grundfos,vaillant&maxPrice=1000")
	assert.Equal(t, []string{"Pompa obiegowa Alpha2"}, names(t, env.Data))

	_, env = get(t, r, "/api/produkty?search=KOCIOŁ")
	assert.Len(t, names(t, env.Data), 2)
}

func TestGetProducts_Paginated(t *testing.T) {
	r, _ := setup(t)

	code, env := get(t, r, "/api/produkty?page=2&limit=2")
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, models.Pagination{Page: 2, Limit: 2, Total: 3, TotalPages: 2}, *env.Meta)
	assert.Len(t, names(t, env.Data), 1)
}

func TestGetProductByID(t *testing.T) {
	r, db := setup(t)

	code, env := get(t, r, "/api/produkty/"+db.Products[0].ID.String())
	assert.Equal(t, http.StatusOK, code)
	var p catalog.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "kotly-gazowe", p.Category)
	assert.Equal(t, "Vaillant", p.ManufacturerName)

	code, env = get(t, r, "/api/produkty/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Nie znaleziono produktu", env.Error)

	code, _ = get(t, r, "/api/produkty/"+db.Products[3].ID.String())
	assert.Equal(t, http.StatusNotFound, code, "inactive product")

	code, _ = get(t, r, "/api/produkty/abc")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetSuggestions(t *testing.T) {
	r, _ := setup(t)

	_, env := get(t, r, "/api/produkty/podpowiedzi?q=p")
	assert.Empty(t, names(t, env.Data), "one character is too short")

	_, env = get(t, r, "/api/produkty/podpowiedzi?q=pompy")
	assert.Equal(t, []string{"Pompa obiegowa Alpha2"}, names(t, env.Data), "matches category name")
}

func TestGetFilterMetadata(t *testing.T) {
	r, db := setup(t)

	code, env := get(t, r, "/api/produkty/filtry")
	assert.Equal(t, http.StatusOK, code)
	var meta models.FilterMetadata
	require.NoError(t, json.Unmarshal(env.Data, &meta))
	assert.Equal(t, models.PriceRangeData{Min: 890, Max: 5200}, meta.PriceRange)
	assert.Equal(t, models.AvailabilityData{InStock: 2, OutOfStock: 1}, meta.Availability)
	require.Len(t, meta.Categories, 2)
	assert.Equal(t, models.FacetOption{Value: "kotly-gazowe", Label: "Kotły gazowe", Count: 2}, meta.Categories[0])

	// Served from cache until invalidated.
	db.AddProduct("Nowy produkt", 10, 1, nil, nil)
	_, env = get(t, r, "/api/produkty/filtry")
	require.NoError(t, json.Unmarshal(env.Data, &meta))
	assert.Equal(t, 890.0, meta.PriceRange.Min)
}
