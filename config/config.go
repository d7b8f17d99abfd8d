package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the typed view of the process environment.
type Config struct {
	Env        string
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Google     GoogleConfig
	Resend     ResendConfig
	Cloudinary CloudinaryConfig
	Shop       ShopConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	FrontendURL    string
	CookieSecure   bool
	// RateLimit is the per-IP, per-route request budget inside RateWindow.
	RateLimit  int
	RateWindow time.Duration
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogQueries      bool
}

type RedisConfig struct {
	URL string
}

type JWTConfig struct {
	Secret      string
	AdminSecret string
	Expiry      time.Duration
	AdminExpiry time.Duration
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether Google sign-in is configured.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

type ResendConfig struct {
	APIKey string
	From   string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	// Folder is the root folder product media is uploaded under.
	Folder string
}

func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// ShopConfig describes the seller as printed on quotes and emails.
type ShopConfig struct {
	Name       string
	StaffEmail string
	Phone      string
	Address    string
	NIP        string
	// QuoteValidDays is how long a quote PDF stays valid.
	QuoteValidDays int
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the configuration from the environment. In production the JWT
// secrets and the database URL are mandatory.
func Load() (*Config, error) {
	cfg := &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:           getEnv("PORT", "8081"),
			AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001"}),
			FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
			CookieSecure:   getEnvBool("COOKIE_SECURE", false),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 5),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			LogQueries:      getEnvBool("DB_LOG_QUERIES", false),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", ""),
			AdminSecret: getEnv("ADMIN_JWT_SECRET", ""),
			Expiry:      getEnvDuration("JWT_EXPIRY", 24*time.Hour),
			AdminExpiry: getEnvDuration("ADMIN_JWT_EXPIRY", 7*24*time.Hour),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8081/api/auth/google/callback"),
		},
		Resend: ResendConfig{
			APIKey: getEnv("RESEND_API_KEY", ""),
			From:   getEnv("RESEND_FROM_EMAIL", "WaterLife <noreply@waterlife.pl>"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "waterlife/products"),
		},
		Shop: ShopConfig{
			Name:           getEnv("SHOP_NAME", "WaterLife"),
			StaffEmail:     getEnv("SHOP_STAFF_EMAIL", "biuro@waterlife.pl"),
			Phone:          getEnv("SHOP_PHONE", ""),
			Address:        getEnv("SHOP_ADDRESS", ""),
			NIP:            getEnv("SHOP_NIP", ""),
			QuoteValidDays: getEnvInt("QUOTE_VALID_DAYS", 14),
		},
	}

	if cfg.JWT.AdminSecret == "" {
		cfg.JWT.AdminSecret = cfg.JWT.Secret
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_NAME", "waterlife"),
		)
		if cfg.IsProduction() {
			return nil, errors.New("DATABASE_URL must be set in production")
		}
	}

	if cfg.JWT.Secret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		cfg.JWT.Secret = "dev-secret-key-change-in-production"
		cfg.JWT.AdminSecret = cfg.JWT.Secret
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
