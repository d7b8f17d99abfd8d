package category_controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/controllers/admin/admintest"
	"github.com/waterlife-shop/waterlife-backend/models"
)

type countingFacets struct{ n int }

func (c *countingFacets) Invalidate() { c.n++ }

type fixture struct {
	*admintest.Harness
	facets *countingFacets
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{Harness: admintest.New(t), facets: &countingFacets{}}
	h := NewHandler(f.DB.CategoryRepo(), f.DB.ManufacturerRepo(), f.facets, zap.NewNop())

	cats := f.Group.Group("/kategorie")
	cats.GET("", h.GetCategories)
	cats.POST("", h.CreateCategory)
	cats.PATCH("/:id", h.UpdateCategory)
	cats.DELETE("/:id", h.DeleteCategory)

	mans := f.Group.Group("/producenci")
	mans.GET("", h.GetManufacturers)
	mans.POST("", h.CreateManufacturer)
	mans.PATCH("/:id", h.UpdateManufacturer)
	mans.DELETE("/:id", h.DeleteManufacturer)
	return f
}

func TestCreateCategory_DerivesSlug(t *testing.T) {
	f := setup(t)

	w := f.Do(http.MethodPost, "/api/admin/kategorie", `{"name":"  Pompy ciepła ","sort_order":3}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Category
	f.Decode(w, &created)
	assert.Equal(t, "Pompy ciepła", created.Name)
	assert.Equal(t, "pompy-ciepla", created.Slug)
	assert.Equal(t, 3, created.SortOrder)
	assert.Equal(t, 1, f.facets.n)

	entry := f.LastActivity()
	assert.Equal(t, models.ActionCreateCategory, entry.Action)
	assert.Equal(t, created.ID.String(), entry.ResourceID)
	assert.Equal(t, "Pompy ciepła", entry.ResourceName)

	w = f.Do(http.MethodPost, "/api/admin/kategorie", `{"name":"Pompy Ciepła"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, f.DB.Categories, 1)
}

func TestCreateCategory_RequiresName(t *testing.T) {
	f := setup(t)

	assert.Equal(t, http.StatusBadRequest, f.Do(http.MethodPost, "/api/admin/kategorie", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.Do(http.MethodPost, "/api/admin/kategorie", `{"name":"   "}`).Code)
	assert.Empty(t, f.DB.Categories)
	assert.Zero(t, f.facets.n)
}

func TestListCategories_CountsProducts(t *testing.T) {
	f := setup(t)
	kotly := f.DB.AddCategory("Kotły")
	f.DB.AddCategory("Armatura")
	f.DB.AddProduct("Kocioł A", 1000, 1, kotly, nil)
	f.DB.AddProduct("Kocioł B", 1200, 1, kotly, nil)

	w := f.Do(http.MethodGet, "/api/admin/kategorie", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []models.CategoryWithProducts
	f.Decode(w, &list)
	require.Len(t, list, 2)
	counts := map[string]int{}
	for _, c := range list {
		counts[c.Name] = c.Products
	}
	assert.Equal(t, map[string]int{"Kotły": 2, "Armatura": 0}, counts)
	assert.Empty(t, f.DB.Activity, "reads are not audited")
}

func TestUpdateCategory_Partial(t *testing.T) {
	f := setup(t)
	cat := f.DB.AddCategory("Grzejniki")

	w := f.Do(http.MethodPatch, "/api/admin/kategorie/"+cat.ID.String(), `{"description":"Grzejniki panelowe"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Category
	f.Decode(w, &updated)
	assert.Equal(t, "Grzejniki", updated.Name)
	assert.Equal(t, cat.Slug, updated.Slug)
	assert.Equal(t, "Grzejniki panelowe", updated.Description)

	entry := f.LastActivity()
	assert.Equal(t, models.ActionUpdateCategory, entry.Action)
	assert.Equal(t, "Grzejniki", entry.ResourceName)
	assert.Contains(t, string(entry.Changes), "Grzejniki panelowe")

	missing := "/api/admin/kategorie/8d6f2a35-4b6e-4a44-9b0c-0d8f5e0c1b2a"
	assert.Equal(t, http.StatusNotFound, f.Do(http.MethodPatch, missing, `{"name":"X"}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.Do(http.MethodPatch, "/api/admin/kategorie/nie-uuid", `{"name":"X"}`).Code)
}

func TestDeleteCategory_RefusedWhileInUse(t *testing.T) {
	f := setup(t)
	cat := f.DB.AddCategory("Zawory")
	f.DB.AddProduct("Zawór kulowy", 40, 10, cat, nil)

	w := f.Do(http.MethodDelete, "/api/admin/kategorie/"+cat.ID.String(), "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, f.DB.Categories, 1)
	assert.Equal(t, models.StatusFailed, f.LastActivity().Status)

	f.DB.Products[0].CategoryID = nil

	w = f.Do(http.MethodDelete, "/api/admin/kategorie/"+cat.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, f.DB.Categories)

	entry := f.LastActivity()
	assert.Equal(t, models.ActionDeleteCategory, entry.Action)
	assert.Equal(t, "Zawory", entry.ResourceName)
	assert.Equal(t, models.StatusSuccess, entry.Status)
	assert.Equal(t, 1, f.facets.n)
}

func TestManufacturerLifecycle(t *testing.T) {
	f := setup(t)

	w := f.Do(http.MethodPost, "/api/admin/producenci", `{"name":"Grundfos","website":"https://grundfos.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Manufacturer
	f.Decode(w, &created)
	assert.Equal(t, "grundfos", created.Slug)
	assert.Equal(t, models.ActionCreateManufacturer, f.LastActivity().Action)

	assert.Equal(t, http.StatusBadRequest, f.Do(http.MethodPost, "/api/admin/producenci", `{"name":"Wilo","website":"nie-url"}`).Code)

	w = f.Do(http.MethodPatch, "/api/admin/producenci/"+created.ID.String(), `{"logo_url":"https://res.cloudinary.com/grundfos.png"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Manufacturer
	f.Decode(w, &updated)
	assert.Equal(t, "Grundfos", updated.Name)
	assert.Equal(t, "https://res.cloudinary.com/grundfos.png", updated.LogoURL)

	w = f.Do(http.MethodGet, "/api/admin/producenci", "")
	var list []models.Manufacturer
	f.Decode(w, &list)
	require.Len(t, list, 1)

	f.DB.AddProduct("Pompa Alpha", 900, 2, nil, &updated)
	assert.Equal(t, http.StatusConflict, f.Do(http.MethodDelete, "/api/admin/producenci/"+created.ID.String(), "").Code)

	f.DB.Products = nil
	require.Equal(t, http.StatusOK, f.Do(http.MethodDelete, "/api/admin/producenci/"+created.ID.String(), "").Code)
	assert.Empty(t, f.DB.Manufacturers)
	assert.Equal(t, models.ActionDeleteManufacturer, f.LastActivity().Action)
	assert.Equal(t, http.StatusNotFound, f.Do(http.MethodDelete, "/api/admin/producenci/"+created.ID.String(), "").Code)
}
