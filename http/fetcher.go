// Package http fetches pages and sitemaps over plain HTTP, for sites that
// don't need JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/webretriever"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodyBytes caps the size of a fetched page.
const DefaultMaxBodyBytes = 10 << 20

// DefaultUserAgent identifies the fetcher to servers.
const DefaultUserAgent = "webretriever/1.0"

// Ensure Fetcher implements webretriever.Fetcher at compile time.
var _ webretriever.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP GET requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	maxBytes  int64
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodyBytes caps the number of body bytes read per page. Longer
// bodies are truncated.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		maxBytes:  DefaultMaxBodyBytes,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch retrieves the HTML content from the given URL. A 404 or 410 is
// reported as ENOTFOUND, 429 and 5xx responses as EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, err := get(ctx, f.client, url, f.userAgent)
	if err != nil {
		return "", err
	}
	defer body.Close()

	b, err := io.ReadAll(io.LimitReader(body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(b), nil
}

// Close is a no-op; http.Client needs no cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func get(ctx context.Context, client *http.Client, url, userAgent string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, webretriever.Errorf(webretriever.EINVALID, "invalid URL %q", url)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if err := statusError(resp.StatusCode, url); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func statusError(code int, url string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return webretriever.Errorf(webretriever.ENOTFOUND, "HTTP %d for %s", code, url)
	case code == http.StatusTooManyRequests || code >= 500:
		return webretriever.Errorf(webretriever.EUNAVAILABLE, "HTTP %d for %s", code, url)
	default:
		return fmt.Errorf("HTTP %d for %s", code, url)
	}
}
