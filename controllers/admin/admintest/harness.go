// Package admintest builds an authenticated back office router over the
// in-memory repositories for admin handler tests.
package admintest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/middleware"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository/repotest"
	"github.com/waterlife-shop/waterlife-backend/services"
)

const Password = "admin-haslo-123"

type Harness struct {
	t *testing.T

	DB       *repotest.DB
	JWT      *services.JWTService
	Sessions *services.AdminSessionService
	Activity *services.ActivityLogService

	Router *gin.Engine
	// Public is /api/admin without authentication (login).
	Public *gin.RouterGroup
	// Group is /api/admin behind admin auth and activity logging.
	Group *gin.RouterGroup

	Admin *models.Admin
	Token string
}

// New seeds one active admin and signs it in.
func New(t *testing.T) *Harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwt, err := services.NewJWTService(config.JWTConfig{Secret: "s", AdminSecret: "a", Expiry: time.Hour, AdminExpiry: time.Hour})
	require.NoError(t, err)

	db := repotest.New()
	logger := zap.NewNop()
	h := &Harness{
		t:        t,
		DB:       db,
		JWT:      jwt,
		Sessions: services.NewAdminSessionService(db.AdminRepo(), logger),
		Activity: services.NewActivityLogService(db.ActivityRepo(), logger),
		Router:   gin.New(),
	}

	hash, err := services.HashPassword(Password)
	require.NoError(t, err)
	h.Admin = &models.Admin{Email: "admin@waterlife.pl", Name: "Admin", PasswordHash: hash, Role: models.RoleSuperAdmin}
	require.NoError(t, db.AdminRepo().Create(context.Background(), h.Admin))

	token, expiresAt, err := jwt.GenerateAdminToken(h.Admin.ID, h.Admin.Email, h.Admin.Role)
	require.NoError(t, err)
	_, err = h.Sessions.CreateSession(context.Background(), h.Admin.ID, token, "127.0.0.1", "test", expiresAt)
	require.NoError(t, err)
	h.Token = token

	h.Public = h.Router.Group("/api/admin")
	h.Group = h.Router.Group("/api/admin",
		middleware.AdminAuthMiddleware(jwt, h.Sessions, db.AdminRepo(), logger),
		middleware.ActivityLoggingMiddleware(h.Activity, db.Snapshots().Load, logger),
	)
	return h
}

// Do sends an authenticated request.
func (h *Harness) Do(method, path, body string) *httptest.ResponseRecorder {
	return h.DoAs(h.Token, method, path, body)
}

// DoAs sends a request with the given bearer token; an empty token sends none.
func (h *Harness) DoAs(token, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	h.Router.ServeHTTP(w, req)
	return w
}

// Decode unmarshals the envelope; data is decoded into dst when non-nil.
func (h *Harness) Decode(w *httptest.ResponseRecorder, dst any) models.ApiResponse {
	h.t.Helper()
	var raw struct {
		models.ApiResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	if dst != nil && len(raw.Data) > 0 {
		require.NoError(h.t, json.Unmarshal(raw.Data, dst))
	}
	return raw.ApiResponse
}

// LastActivity returns the newest activity log entry.
func (h *Harness) LastActivity() *models.ActivityLog {
	h.t.Helper()
	require.NotEmpty(h.t, h.DB.Activity, "no activity recorded")
	return h.DB.Activity[len(h.DB.Activity)-1]
}
