// Package apiclient talks to the invite API. Every call goes through
// Client.Execute, which times the exchange and logs slow responses.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/qrinvite/internal/dependencies/clock"
)

const (
	// DefaultBaseURL is the API root every endpoint is appended to
	DefaultBaseURL = "http://localhost:8000/api/v1"

	// SlowThreshold is the elapsed time above which a response is logged as slow
	SlowThreshold = 1000 * time.Millisecond
)

// ErrTransport wraps failures where no HTTP response was obtained
var ErrTransport = errors.New("transport failure")

// Options describes one outbound request.
// Header is merged over the client's default headers; Body is sent as is.
type Options struct {
	Method string
	Header http.Header
	Body   io.Reader
}

// TimedResult is the raw response of one exchange plus its timing
type TimedResult struct {
	Response *http.Response
	Elapsed  time.Duration
	// OK is true for 2xx statuses only; it says nothing about the body
	OK bool
}

// ElapsedMillis returns the elapsed time in milliseconds
func (r *TimedResult) ElapsedMillis() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// Slow reports whether the exchange exceeded SlowThreshold
func (r *TimedResult) Slow() bool {
	return IsSlow(r.Elapsed)
}

// IsSlow reports whether d exceeds SlowThreshold. Exactly the threshold is not slow.
func IsSlow(d time.Duration) bool {
	return d > SlowThreshold
}

// Config holds the client's collaborators
type Config struct {
	// BaseURL defaults to DefaultBaseURL
	BaseURL string
	// HTTPClient defaults to a client without a timeout
	HTTPClient *http.Client
	Clock      clock.Clock
	Logger     *slog.Logger
	// Header is sent with every request unless the caller overrides a key
	Header http.Header
}

// Client is an HTTP client for the invite API
type Client struct {
	baseURL    string
	rootURL    string
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger
	header     http.Header
}

// New creates a new API client
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	header := cfg.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	if header.Get("Accept") == "" {
		header.Set("Accept", "application/json")
	}

	return &Client{
		baseURL:    baseURL,
		rootURL:    rootOf(baseURL),
		httpClient: httpClient,
		clock:      clk,
		logger:     logger,
		header:     header,
	}
}

// BaseURL returns the API root endpoints are appended to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Execute performs exactly one request to BaseURL+endpoint.
//
// Any HTTP status is returned as a result; only transport failures are
// errors, and those are logged and returned wrapped in ErrTransport.
// The caller must close the response body.
func (c *Client) Execute(ctx context.Context, endpoint string, opts Options) (*TimedResult, error) {
	return c.execute(ctx, c.baseURL+endpoint, endpoint, opts)
}

func (c *Client) execute(ctx context.Context, target, endpoint string, opts Options) (*TimedResult, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, target, opts.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range c.header {
		req.Header[key] = append([]string(nil), values...)
	}
	for key, values := range opts.Header {
		req.Header[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := c.clock.Since(start)
	if elapsed < 0 {
		elapsed = 0
	}

	if err != nil {
		c.logger.Error("api request error",
			slog.String("endpoint", endpoint),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, endpoint, err)
	}

	result := &TimedResult{
		Response: resp,
		Elapsed:  elapsed,
		OK:       resp.StatusCode >= 200 && resp.StatusCode < 300,
	}

	c.logger.Info("api request",
		slog.String("endpoint", endpoint),
		slog.String("elapsed_ms", fmt.Sprintf("%.2f", result.ElapsedMillis())),
		slog.Int("status", resp.StatusCode),
	)
	if result.Slow() {
		c.logger.Warn("slow api response",
			slog.String("endpoint", endpoint),
			slog.String("elapsed_ms", fmt.Sprintf("%.2f", result.ElapsedMillis())),
		)
	}

	return result, nil
}

// rootOf strips the path from an API base URL
func rootOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	u.Path = ""
	u.RawPath = ""
	return strings.TrimSuffix(u.String(), "/")
}
