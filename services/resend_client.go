package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
)

const resendEndpoint = "https://api.resend.com/emails"

// Email is one outgoing message.
type Email struct {
	To          []string
	ReplyTo     string
	Subject     string
	HTML        string
	Attachments []Attachment
}

type Attachment struct {
	Filename string
	Content  []byte
}

// Mailer sends emails.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// ResendClient handles email sending via Resend API
type ResendClient struct {
	apiKey   string
	from     string
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

func NewResendClient(cfg config.ResendConfig, logger *zap.Logger) *ResendClient {
	return &ResendClient{
		apiKey:   cfg.APIKey,
		from:     cfg.From,
		endpoint: resendEndpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
		logger:   logger.Named("resend"),
	}
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type resendPayload struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	ReplyTo     string             `json:"reply_to,omitempty"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

// Send posts the email to Resend. Without an API key the email is only
// logged, which is how development runs.
func (r *ResendClient) Send(ctx context.Context, email Email) error {
	if r.apiKey == "" {
		r.logger.Info("RESEND_API_KEY not set, email not sent",
			zap.Strings("to", email.To),
			zap.String("subject", email.Subject),
		)
		return nil
	}

	payload := resendPayload{
		From:    r.from,
		To:      email.To,
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		HTML:    email.HTML,
	}
	for _, a := range email.Attachments {
		payload.Attachments = append(payload.Attachments, resendAttachment{
			Filename: a.Filename,
			Content:  base64.StdEncoding.EncodeToString(a.Content),
		})
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		r.logger.Error("resend api error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return fmt.Errorf("resend api error: status %d", resp.StatusCode)
	}

	r.logger.Info("email sent", zap.Strings("to", email.To), zap.String("subject", email.Subject))
	return nil
}
