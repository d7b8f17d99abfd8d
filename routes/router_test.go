package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func newTestRouter(t *testing.T, db Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: "test"}
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	return NewRouter(Deps{Config: cfg, Logger: zap.NewNop(), Database: db}, StorefrontHandlers{}, AdminHandlers{})
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoutesRegistered(t *testing.T) {
	r := newTestRouter(t, nil)

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /api/produkty",
		"GET /api/produkty/filtry",
		"GET /api/produkty/podpowiedzi",
		"GET /api/produkty/:id",
		"POST /api/zapytanie",
		"GET /api/koszyk",
		"POST /api/auth/logowanie",
		"GET /api/konto/zamowienia",
		"POST /api/admin/login",
		"GET /api/admin/aktywnosc",
		"GET /api/admin/zamowienia/statystyki",
		"PATCH /api/admin/zamowienia/:id/status",
		"GET /api/admin/zamowienia/:id/pdf",
		"PUT /api/admin/tresci/:key",
		"DELETE /api/admin/kategorie/:id",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	r := newTestRouter(t, nil)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/admin/me").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/admin/zamowienia").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/konto").Code)
}

func TestHealth(t *testing.T) {
	w := get(newTestRouter(t, fakePinger{}), "/health")
	require.Equal(t, http.StatusOK, w.Code)
	var ok struct {
		Success bool         `json:"success"`
		Data    healthStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ok))
	assert.True(t, ok.Success)
	assert.Equal(t, "ok", ok.Data.Database)
	assert.Equal(t, "skipped", ok.Data.Redis)

	w = get(newTestRouter(t, fakePinger{err: errors.New("connection refused")}), "/health")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var down struct {
		Success bool         `json:"success"`
		Data    healthStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &down))
	assert.False(t, down.Success)
	assert.Equal(t, "down", down.Data.Database)
}
