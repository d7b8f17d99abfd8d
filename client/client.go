// Package client talks to the storefront API. Client satisfies catalog.Source
// so a catalog.Pipeline can run against a remote shop.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/cart"
	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/models"
)

const (
	defaultTimeout = 15 * time.Second
	maxBody        = 4 << 20
)

// ErrEmptyCart is returned by SubmitCart for a cart without line items.
var ErrEmptyCart = errors.New("cart is empty")

// APIError is returned for a non-2xx reply or a body with success:false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("waterlife api: status %d", e.Status)
	}
	return fmt.Sprintf("waterlife api: status %d: %s", e.Status, e.Message)
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New returns a client for the shop at baseURL, e.g. "http://localhost:8081".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is models.ApiResponse with Data left raw.
type envelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Error   string             `json:"error"`
	Data    json.RawMessage    `json:"data"`
	Meta    *models.Pagination `json:"meta"`
}

// ListProducts fetches every active product, unfiltered and unpaginated.
// Filtering happens locally in the pipeline.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.get(ctx, "/api/produkty", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return products, nil
}

// Suggest asks the server for search suggestions.
func (c *Client) Suggest(ctx context.Context, query string) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.get(ctx, "/api/produkty/podpowiedzi", url.Values{"q": {query}}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches one active product.
func (c *Client) Product(ctx context.Context, id string) (*catalog.Product, error) {
	var p catalog.Product
	if err := c.get(ctx, "/api/produkty/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SubmitQuote posts a quote request. The reply is returned only when the
// server accepted it.
func (c *Client) SubmitQuote(ctx context.Context, req models.QuoteRequest) (*models.QuoteResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal quote: %w", err)
	}
	status, raw, err := c.do(ctx, http.MethodPost, "/api/zapytanie", nil, body)
	if err != nil {
		return nil, err
	}

	var out models.QuoteResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &APIError{Status: status, Message: http.StatusText(status)}
	}
	if status < 200 || status > 299 || !out.Success {
		return nil, &APIError{Status: status, Message: out.Error}
	}
	return &out, nil
}

// SubmitCart sends the contents of store as a guest quote request and clears
// the cart once the shop has accepted it. A rejected request leaves the cart
// untouched.
func (c *Client) SubmitCart(ctx context.Context, store *cart.Store, customer models.QuoteCustomer) (*models.QuoteResponse, error) {
	snap := store.Snapshot()
	if len(snap.Items) == 0 {
		return nil, ErrEmptyCart
	}
	resp, err := c.SubmitQuote(ctx, models.QuoteRequest{
		Customer: customer,
		Items:    snap.Items,
		Total:    snap.Total,
		IsGuest:  true,
	})
	if err != nil {
		return nil, err
	}
	store.Clear(ctx)
	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	status, raw, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if status < 200 || status > 299 {
			return &APIError{Status: status, Message: http.StatusText(status)}
		}
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if status < 200 || status > 299 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return &APIError{Status: status, Message: msg}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (int, []byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)
	return resp.StatusCode, raw, nil
}
