// ════════════════════════════════════════════════════════════
// Path: utils/login_tracker.go
// Track customer login events
// ════════════════════════════════════════════════════════════

package utils

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Execer is the slice of *pgxpool.Pool the tracker needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// LoginTracker writes one login_events row per successful customer sign-in.
type LoginTracker struct {
	db     Execer
	logger *zap.Logger
}

func NewLoginTracker(db Execer, logger *zap.Logger) *LoginTracker {
	return &LoginTracker{db: db, logger: logger.Named("login-tracker")}
}

const insertLoginEvent = `
	INSERT INTO login_events (
		id, user_id, logged_in_at, ip_address, user_agent,
		device_type, browser, os
	) VALUES ($1, $2, NOW(), $3, $4, $5, $6, $7)
`

// Record stores the login. A nil tracker is a no-op.
func (t *LoginTracker) Record(ctx context.Context, userID uuid.UUID, ip, userAgent string) error {
	if t == nil || t.db == nil {
		return nil
	}

	_, err := t.db.Exec(ctx, insertLoginEvent,
		uuid.Must(uuid.NewV7()),
		userID,
		ip,
		userAgent,
		parseDeviceType(userAgent),
		parseBrowser(userAgent),
		parseOS(userAgent),
	)
	if err != nil {
		t.logger.Warn("failed to log login event", zap.String("user_id", userID.String()), zap.Error(err))
		return err
	}

	t.logger.Debug("login event logged", zap.String("user_id", userID.String()), zap.String("ip", ip))
	return nil
}

// parseDeviceType determines if the request is from mobile, tablet, or desktop
func parseDeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	if strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad") {
		return "tablet"
	}
	if strings.Contains(ua, "mobile") || strings.Contains(ua, "android") {
		return "mobile"
	}
	return "desktop"
}

// parseBrowser extracts browser name from user agent
func parseBrowser(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "edg"):
		return "Edge"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "safari"):
		return "Safari"
	}
	return "Other"
}

// parseOS extracts operating system from user agent. Android and iOS are
// checked first since their agents also mention Linux and Mac OS.
func parseOS(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		return "iOS"
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "mac os"):
		return "macOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	}
	return "Other"
}
