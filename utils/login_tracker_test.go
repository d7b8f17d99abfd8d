package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	androidUA = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36"
	edgeUA    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 Edg/120.0"
	firefoxUA = "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
	ipadUA    = "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/604.1"
)

func TestParseUserAgent(t *testing.T) {
	cases := []struct {
		ua, device, browser, os string
	}{
		{iphoneUA, "mobile", "Safari", "iOS"},
		{androidUA, "mobile", "Chrome", "Android"},
		{edgeUA, "desktop", "Edge", "Windows"},
		{firefoxUA, "desktop", "Firefox", "Linux"},
		{ipadUA, "tablet", "Safari", "iOS"},
		{"curl/8.4.0", "desktop", "Other", "Other"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.device, parseDeviceType(tc.ua), tc.ua)
		assert.Equal(t, tc.browser, parseBrowser(tc.ua), tc.ua)
		assert.Equal(t, tc.os, parseOS(tc.ua), tc.ua)
	}
}

type recordingExecer struct {
	sql  string
	args []any
	err  error
}

func (r *recordingExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sql, r.args = sql, args
	return pgconn.NewCommandTag("INSERT 0 1"), r.err
}

func TestLoginTracker_Record(t *testing.T) {
	db := &recordingExecer{}
	tracker := NewLoginTracker(db, zap.NewNop())
	userID := uuid.New()

	require.NoError(t, tracker.Record(context.Background(), userID, "10.0.0.1", androidUA))
	assert.Contains(t, db.sql, "INSERT INTO login_events")
	require.Len(t, db.args, 7)
	assert.Equal(t, userID, db.args[1])
	assert.Equal(t, "10.0.0.1", db.args[2])
	assert.Equal(t, []any{"mobile", "Chrome", "Android"}, db.args[4:])

	db.err = errors.New("connection reset")
	assert.Error(t, tracker.Record(context.Background(), userID, "10.0.0.1", androidUA))
}

func TestLoginTracker_NilIsNoop(t *testing.T) {
	var tracker *LoginTracker
	assert.NoError(t, tracker.Record(context.Background(), uuid.New(), "", ""))
}
