package content_controller

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/controllers/admin/admintest"
	"github.com/waterlife-shop/waterlife-backend/models"
)

func setup(t *testing.T) *admintest.Harness {
	t.Helper()
	f := admintest.New(t)
	h := NewHandler(f.DB.ContentRepo(), f.DB.ContactRepo(), zap.NewNop())

	sections := f.Group.Group("/tresci")
	sections.GET("", h.GetSections)
	sections.PUT("/:key", h.UpsertSection)
	sections.DELETE("/:key", h.DeleteSection)

	messages := f.Group.Group("/wiadomosci")
	messages.GET("", h.GetMessages)
	messages.PATCH("/:id/read", h.MarkMessageRead)
	messages.DELETE("/:id", h.DeleteMessage)
	return f
}

func TestUpsertSection_CreatesThenReplaces(t *testing.T) {
	f := setup(t)

	w := f.Do(http.MethodPut, "/api/admin/tresci/hero", `{"title":"Sezon grzewczy","content":{"cta":"Zobacz kotły"},"sortOrder":1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created models.HomepageSection
	f.Decode(w, &created)
	assert.True(t, created.Active, "active defaults to true")
	assert.JSONEq(t, `{"cta":"Zobacz kotły"}`, string(created.Content))

	w = f.Do(http.MethodPut, "/api/admin/tresci/hero", `{"title":"Nawadnianie ogrodu","active":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	var replaced models.HomepageSection
	f.Decode(w, &replaced)
	assert.Equal(t, created.ID, replaced.ID)
	assert.False(t, replaced.Active)

	require.Len(t, f.DB.Sections, 1)
	assert.Equal(t, "Nawadnianie ogrodu", f.DB.Sections[0].Title)

	entry := f.LastActivity()
	assert.Equal(t, models.ActionUpdateContent, entry.Action)
	assert.Equal(t, "hero", entry.ResourceID)
	assert.Equal(t, "hero", entry.ResourceName)
	assert.Contains(t, string(entry.Changes), "Nawadnianie ogrodu")
}

func TestUpsertSection_Validation(t *testing.T) {
	f := setup(t)

	assert.Equal(t, http.StatusBadRequest, f.Do(http.MethodPut, "/api/admin/tresci/Zly-Klucz", `{"title":"X"}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.Do(http.MethodPut, "/api/admin/tresci/hero", `{"subtitle":"bez tytułu"}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.Do(http.MethodPut, "/api/admin/tresci/hero", `{"title":"X","imageUrl":"nie-url"}`).Code)
	assert.Empty(t, f.DB.Sections)
}

func TestSectionsListIncludesInactive(t *testing.T) {
	f := setup(t)
	f.DB.Sections = []*models.HomepageSection{
		{Key: "banner", Title: "B", SortOrder: 2, Active: false},
		{Key: "hero", Title: "H", SortOrder: 1, Active: true},
	}

	w := f.Do(http.MethodGet, "/api/admin/tresci", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sections []models.HomepageSection
	f.Decode(w, &sections)
	require.Len(t, sections, 2)
	assert.Equal(t, "hero", sections[0].Key)

	assert.Equal(t, http.StatusOK, f.Do(http.MethodDelete, "/api/admin/tresci/banner", "").Code)
	assert.Equal(t, http.StatusNotFound, f.Do(http.MethodDelete, "/api/admin/tresci/banner", "").Code)
	assert.Len(t, f.DB.Sections, 1)
}

func TestMessages(t *testing.T) {
	f := setup(t)
	older := &models.ContactMessage{Name: "Jan", Email: "jan@example.pl", Message: "Pytanie o pompę ciepła", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.ContactMessage{Name: "Anna", Email: "anna@example.pl", Message: "Proszę o wycenę instalacji", CreatedAt: time.Now()}
	for _, m := range []*models.ContactMessage{older, newer} {
		_ = m.BeforeCreate(nil)
		f.DB.Messages = append(f.DB.Messages, m)
	}

	w := f.Do(http.MethodGet, "/api/admin/wiadomosci?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.ContactMessage
	resp := f.Decode(w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Anna", list[0].Name)
	assert.Equal(t, 2, resp.Meta.Total)

	w = f.Do(http.MethodPatch, "/api/admin/wiadomosci/"+newer.ID.String()+"/read", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, newer.Read)
	assert.Equal(t, models.ActionUpdateContactMessage, f.LastActivity().Action)

	w = f.Do(http.MethodGet, "/api/admin/wiadomosci?unread=true", "")
	f.Decode(w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Jan", list[0].Name)

	assert.Equal(t, http.StatusOK, f.Do(http.MethodDelete, "/api/admin/wiadomosci/"+older.ID.String(), "").Code)
	assert.Equal(t, http.StatusNotFound, f.Do(http.MethodDelete, "/api/admin/wiadomosci/"+older.ID.String(), "").Code)
	assert.Equal(t, http.StatusBadRequest, f.Do(http.MethodPatch, "/api/admin/wiadomosci/nie-uuid/read", "").Code)
}
