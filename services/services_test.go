package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/waterlife-shop/waterlife-backend/cart"
	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
)

func testJWT(t *testing.T) *JWTService {
	t.Helper()
	j, err := NewJWTService(config.JWTConfig{
		Secret:      "user-secret",
		AdminSecret: "admin-secret",
		Expiry:      time.Hour,
		AdminExpiry: 24 * time.Hour,
	})
	require.NoError(t, err)
	return j
}

func TestJWT_UserRoundTrip(t *testing.T) {
	j := testJWT(t)
	id := uuid.New()

	token, err := j.GenerateUserToken(id, "jan@example.com", "Jan Kowalski")
	require.NoError(t, err)

	claims, err := j.VerifyUserToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "jan@example.com", claims.Email)
}

func TestJWT_KindsDoNotCrossVerify(t *testing.T) {
	j := testJWT(t)

	userToken, err := j.GenerateUserToken(uuid.New(), "jan@example.com", "Jan")
	require.NoError(t, err)
	adminToken, _, err := j.GenerateAdminToken(uuid.New(), "admin@waterlife.pl", models.RoleAdmin)
	require.NoError(t, err)

	_, err = j.VerifyAdminToken(userToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = j.VerifyUserToken(adminToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_Expired(t *testing.T) {
	j := testJWT(t)
	issued := time.Now().Add(-2 * time.Hour)
	j.now = func() time.Time { return issued }
	token, err := j.GenerateUserToken(uuid.New(), "jan@example.com", "Jan")
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.VerifyUserToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_AdminExpiryReturned(t *testing.T) {
	j := testJWT(t)
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return now }
	_, exp, err := j.GenerateAdminToken(uuid.New(), "a@waterlife.pl", models.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), exp)
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	_, err := NewJWTService(config.JWTConfig{Secret: "x"})
	assert.Error(t, err)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("tajnehaslo")
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "tajnehaslo"))
	assert.False(t, VerifyPassword(hash, "inne-haslo"))
	assert.False(t, VerifyPassword("", "tajnehaslo"))
	assert.False(t, ValidatePassword("krotkie"))
	assert.True(t, ValidatePassword("dlugiehaslo"))
}

func TestTokens(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, HashToken(a), HashToken(a))
	assert.NotEqual(t, a, HashToken(a))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0,00", FormatAmount(0))
	assert.Equal(t, "999,90", FormatAmount(999.9))
	assert.Equal(t, "1 234,56", FormatAmount(1234.56))
	assert.Equal(t, "12 500,00", FormatAmount(12500))
	assert.Equal(t, "1 000 000,00", FormatAmount(1e6))
	assert.Equal(t, "-45,50", FormatAmount(-45.5))
	assert.Equal(t, "4 500,00 zł", FormatPLN(4500))
}

// ─────────────────────────────────────────────────────────────
// Emails
// ─────────────────────────────────────────────────────────────

type recordingMailer struct {
	mu   sync.Mutex
	sent []Email
}

func (r *recordingMailer) Send(_ context.Context, e Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, e)
	return nil
}

var testShop = config.ShopConfig{
	Name:           "WaterLife",
	StaffEmail:     "biuro@waterlife.pl",
	Phone:          "+48 600 100 200",
	Address:        "ul. Wodna 1, 00-001 Warszawa",
	QuoteValidDays: 14,
}

func testOrder() *models.Order {
	company := "Instal <Serwis>"
	items := []cart.LineItem{
		{ID: "a", Name: "Kocioł gazowy", Price: 4500, Quantity: 1},
		{ID: "b", Name: "Pompa obiegowa", Price: 650.5, Quantity: 2},
	}
	total, count := cart.Totals(items)
	o := &models.Order{
		ID:          uuid.New(),
		OrderNumber: "WL-20261016-ABC123",
		Customer: models.QuoteCustomer{
			FirstName: "Anna", LastName: "Nowak", Email: "anna@example.com",
			Phone: "500600700", Company: &company,
		},
		Cart:      datatypes.NewJSONType(cart.Snapshot{Items: items, Total: total, ItemCount: count}),
		Total:     total,
		Status:    models.OrderStatusPending,
		IsGuest:   true,
		CreatedAt: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}
	return o
}

func TestNotifier_QuoteEmails(t *testing.T) {
	mailer := &recordingMailer{}
	n := NewNotifier(mailer, testShop, "https://waterlife.pl/", zap.NewNop())
	order := testOrder()

	require.NoError(t, n.QuoteStaffNotification(context.Background(), order, []byte("%PDF-1.3")))
	require.NoError(t, n.QuoteConfirmation(context.Background(), order))
	require.Len(t, mailer.sent, 2)

	staff := mailer.sent[0]
	assert.Equal(t, []string{"biuro@waterlife.pl"}, staff.To)
	assert.Equal(t, "anna@example.com", staff.ReplyTo)
	assert.Contains(t, staff.Subject, "WL-20261016-ABC123")
	assert.Contains(t, staff.HTML, "Instal &lt;Serwis&gt;")
	assert.Contains(t, staff.HTML, "5 801,00 zł")
	require.Len(t, staff.Attachments, 1)
	assert.Equal(t, "zapytanie-WL-20261016-ABC123.pdf", staff.Attachments[0].Filename)

	confirm := mailer.sent[1]
	assert.Equal(t, []string{"anna@example.com"}, confirm.To)
	assert.Contains(t, confirm.HTML, "Pompa obiegowa")
}

func TestNotifier_PasswordResetLink(t *testing.T) {
	mailer := &recordingMailer{}
	n := NewNotifier(mailer, testShop, "https://waterlife.pl/", zap.NewNop())
	user := &models.User{Email: "jan@example.com", FirstName: "Jan"}

	require.NoError(t, n.PasswordReset(context.Background(), user, "abc123", time.Hour))
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].HTML, "https://waterlife.pl/nowe-haslo?token=abc123")
	assert.Contains(t, mailer.sent[0].HTML, "60 min")
}

func TestResendClient_PostsPayload(t *testing.T) {
	var got resendPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	c := NewResendClient(config.ResendConfig{APIKey: "re_test", From: "WaterLife <sklep@waterlife.pl>"}, zap.NewNop())
	c.endpoint = srv.URL

	err := c.Send(context.Background(), Email{
		To:          []string{"anna@example.com"},
		Subject:     "Test",
		HTML:        "<p>x</p>",
		Attachments: []Attachment{{Filename: "a.pdf", Content: []byte("pdf")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "WaterLife <sklep@waterlife.pl>", got.From)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("pdf")), got.Attachments[0].Content)
}

func TestResendClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewResendClient(config.ResendConfig{APIKey: "re_test"}, zap.NewNop())
	c.endpoint = srv.URL
	err := c.Send(context.Background(), Email{To: []string{"x@example.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestResendClient_NoKeySkips(t *testing.T) {
	c := NewResendClient(config.ResendConfig{}, zap.NewNop())
	c.endpoint = "http://127.0.0.1:0"
	assert.NoError(t, c.Send(context.Background(), Email{To: []string{"x@example.com"}}))
}

func TestGenerateQuotePDF(t *testing.T) {
	out, err := GenerateQuotePDF(testOrder(), testShop)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestPDFTextFoldsPolishLetters(t *testing.T) {
	assert.Equal(t, "Zolta lodz - Lukasz", pdfText("Żółta łódź – Łukasz"))
}

// ─────────────────────────────────────────────────────────────
// Admin sessions
// ─────────────────────────────────────────────────────────────

type fakeAdminRepo struct {
	repository.AdminRepository
	sessions map[string]*models.AdminSession
	touched  int
}

func (f *fakeAdminRepo) CreateSession(_ context.Context, s *models.AdminSession) error {
	f.sessions[s.TokenHash] = s
	return nil
}

func (f *fakeAdminRepo) ActiveSession(_ context.Context, hash string, now time.Time) (*models.AdminSession, error) {
	s, ok := f.sessions[hash]
	if !ok || !s.IsActive || !s.ExpiresAt.After(now) {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeAdminRepo) TouchSession(context.Context, string, time.Time) error {
	f.touched++
	return nil
}

func (f *fakeAdminRepo) DeactivateSession(_ context.Context, hash string) error {
	if s, ok := f.sessions[hash]; ok {
		s.IsActive = false
	}
	return nil
}

func TestAdminSessions_LogoutRevokes(t *testing.T) {
	repo := &fakeAdminRepo{sessions: map[string]*models.AdminSession{}}
	svc := NewAdminSessionService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, uuid.New(), "token-1", "127.0.0.1", "test", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = svc.Validate(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.touched)

	require.NoError(t, svc.DeactivateSession(ctx, "token-1"))
	_, err = svc.Validate(ctx, "token-1")
	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestAdminSessions_Expired(t *testing.T) {
	repo := &fakeAdminRepo{sessions: map[string]*models.AdminSession{}}
	svc := NewAdminSessionService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, uuid.New(), "token-2", "", "", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = svc.Validate(ctx, "token-2")
	assert.ErrorIs(t, err, ErrSessionRevoked)
}
