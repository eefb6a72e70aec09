package httpclient

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// maxErrorBody bounds how much of a failed response body is kept in a StatusError.
const maxErrorBody = 512

// redactedParams are query parameters that never reach the logs.
var redactedParams = []string{"api_key", "token", "access_token"}

// Config holds transport configuration.
type Config struct {
	// Timeout is the overall request timeout. Zero leaves it to the transport.
	Timeout   time.Duration
	UserAgent string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: "PickFlick",
	}
}

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("HTTP %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Client wraps http.Client. Each request is attempted exactly once.
type Client struct {
	http   *http.Client
	config Config
	logger *slog.Logger
}

// New creates a new Client with a default http.Client.
func New(cfg Config, logger *slog.Logger) *Client {
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewWithHTTPClient creates a Client with a custom http.Client (e.g. a test transport).
func NewWithHTTPClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:   httpClient,
		config: cfg,
		logger: logger,
	}
}

// Do executes an HTTP request. Non-2xx responses are drained, closed and
// reported as *StatusError, so a nil error always means a usable body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.config.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	safeURL := RedactURL(req.URL)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s %s: %w", req.Method, safeURL, err)
	}

	c.logger.Debug("http request",
		slog.String("method", req.Method),
		slog.String("url", safeURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        safeURL,
			Body:       string(body),
		}
	}
	return resp, nil
}

// RedactURL renders u with credential query parameters masked.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	clone := *u
	q := clone.Query()
	for _, p := range redactedParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
		}
	}
	clone.RawQuery = q.Encode()
	clone.User = nil
	return clone.String()
}
