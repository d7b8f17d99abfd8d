package admin_controller

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/controllers/admin/admintest"
	"github.com/waterlife-shop/waterlife-backend/middleware"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/services"
)

func setup(t *testing.T) *admintest.Harness {
	t.Helper()
	h := admintest.New(t)
	handler := NewHandler(h.DB.AdminRepo(), h.Sessions, h.Activity, h.JWT, false, zap.NewNop())

	h.Public.POST("/login", handler.AdminLogin)
	h.Group.POST("/logout", handler.AdminLogout)
	h.Group.GET("/me", handler.GetAdminMe)
	h.Group.GET("/aktywnosc", handler.GetActivityLogs)
	return h
}

func TestAdminLogin(t *testing.T) {
	h := setup(t)

	w := h.DoAs("", http.MethodPost, "/api/admin/login", `{"email":"admin@waterlife.pl","password":"`+admintest.Password+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AdminLoginResponse
	h.Decode(w, &resp)
	assert.Equal(t, h.Admin.ID, resp.Admin.ID)
	require.NotNil(t, resp.Admin.LastLoginAt)

	var cookieSet bool
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AdminCookie && c.Value == resp.Token {
			cookieSet = true
		}
	}
	assert.True(t, cookieSet)

	// The new token has its own session and works.
	assert.Equal(t, http.StatusOK, h.DoAs(resp.Token, http.MethodGet, "/api/admin/me", "").Code)
	assert.Len(t, h.DB.Sessions, 2)
}

func TestAdminLogin_Rejections(t *testing.T) {
	h := setup(t)

	w := h.DoAs("", http.MethodPost, "/api/admin/login", `{"email":"admin@waterlife.pl","password":"zle"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.DoAs("", http.MethodPost, "/api/admin/login", `{"email":"nikt@waterlife.pl","password":"zle"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	hash, err := services.HashPassword("haslo-zawieszone")
	require.NoError(t, err)
	require.NoError(t, h.DB.AdminRepo().Create(context.Background(), &models.Admin{
		Email: "zawieszony@waterlife.pl", Name: "Z", PasswordHash: hash, Status: "suspended",
	}))
	w = h.DoAs("", http.MethodPost, "/api/admin/login", `{"email":"zawieszony@waterlife.pl","password":"haslo-zawieszone"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMeAndLogout(t *testing.T) {
	h := setup(t)

	w := h.Do(http.MethodGet, "/api/admin/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	var me models.AdminResponse
	h.Decode(w, &me)
	assert.Equal(t, "admin@waterlife.pl", me.Email)

	require.Equal(t, http.StatusOK, h.Do(http.MethodPost, "/api/admin/logout", "").Code)
	assert.Equal(t, http.StatusUnauthorized, h.Do(http.MethodGet, "/api/admin/me", "").Code, "token is revoked by logout")
}

func TestGetActivityLogs(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	for _, action := range []string{models.ActionCreateProduct, models.ActionUpdateOrder, models.ActionUpdateOrder} {
		h.Activity.LogActivity(ctx, services.LogActivityRequest{
			AdminID:      h.Admin.ID,
			AdminEmail:   h.Admin.Email,
			Action:       action,
			ResourceType: "x",
			ResourceID:   "1",
		})
	}

	w := h.Do(http.MethodGet, "/api/admin/aktywnosc?action=updated_order&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var logs []models.ActivityLogResponse
	resp := h.Decode(w, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionUpdateOrder, logs[0].Action)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)

	assert.Equal(t, http.StatusBadRequest, h.Do(http.MethodGet, "/api/admin/aktywnosc?admin_id=nope", "").Code)
}
