package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_JWT_SECRET", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.Server.AllowedOrigins)
	assert.Contains(t, cfg.Database.URL, "/waterlife?sslmode=disable")
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.Equal(t, cfg.JWT.Secret, cfg.JWT.AdminSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, 14, cfg.Shop.QuoteValidDays)
	assert.False(t, cfg.Google.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("ALLOWED_ORIGINS", "https://waterlife.pl, https://admin.waterlife.pl")
	t.Setenv("RATE_LIMIT", "20")
	t.Setenv("RATE_WINDOW", "30s")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_JWT_SECRET", "admin-s3cret")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("FRONTEND_URL", "https://waterlife.pl/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://waterlife.pl", "https://admin.waterlife.pl"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 20, cfg.Server.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
	assert.Equal(t, "admin-s3cret", cfg.JWT.AdminSecret)
	assert.True(t, cfg.Server.CookieSecure)
	assert.Equal(t, "https://waterlife.pl", cfg.Server.FrontendURL)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://db/waterlife")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "x")
	t.Setenv("DATABASE_URL", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		l, err := NewLogger(env)
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
}
