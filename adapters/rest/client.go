package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/folio-sync/pkg/apperror"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

const defaultTimeout = 30 * time.Second

// CredentialSource yields the bearer token to attach, or empty when the
// caller is unauthenticated.
type CredentialSource interface {
	Get() (string, error)
}

// Client talks to the portfolio service. It serializes request bodies as
// JSON, attaches the bearer credential when one is available, and maps every
// failure into the pkg/apperror taxonomy. It never retries.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	creds          CredentialSource
	onUnauthorized func()
	log            logger.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithCredentials(src CredentialSource) Option {
	return func(c *Client) { c.creds = src }
}

// WithOnUnauthorized installs a hook fired on every 401 response, after the
// error has been built but before it is returned. The session layer uses it
// to clear the stored credential (forced logout).
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// errorEnvelope is the service's wire shape for any non-2xx response.
type errorEnvelope struct {
	Message    string              `json:"message"`
	StatusCode int                 `json:"statusCode"`
	Errors     map[string][]string `json:"errors"`
}

// do runs one request. body (when non-nil) is JSON-encoded; out (when
// non-nil) receives the decoded 2xx response body. A 204 with no body is a
// plain success.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperror.NewNetwork("failed to encode request body", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return apperror.NewNetwork("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.creds != nil {
		token, err := c.creds.Get()
		if err != nil {
			return apperror.NewNetwork("failed to read credential", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.NewNetwork("request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.NewNetwork("failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.asAPIError(method, path, resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperror.NewNetwork("failed to decode response body", err)
	}
	return nil
}

func (c *Client) asAPIError(method, path string, status int, body []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Message == "" {
		env.Message = http.StatusText(status)
	}
	apiErr := apperror.NewAPIError(status, env.Message, env.Errors)

	c.log.Warn("api request failed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
	)

	if status == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return apiErr
}
