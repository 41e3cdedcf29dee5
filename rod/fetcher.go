// Package rod implements webretriever.Fetcher with a headless Chrome browser.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/webretriever"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

var errClosed = webretriever.Errorf(webretriever.EINVALID, "fetcher is closed")

// Ensure Fetcher implements webretriever.Fetcher at compile time.
var _ webretriever.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation. Each
// fetch opens its own tab, so Fetcher is safe for concurrent use.
type Fetcher struct {
	manager    *BrowserManager
	timeout    time.Duration
	maxPages   int
	waitStable time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch call. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages a browser renders before it is recycled.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithWaitStable makes Fetch wait until the DOM has not changed for d after
// the load event, for pages that render content after loading.
func WithWaitStable(d time.Duration) Option {
	return func(f *Fetcher) {
		f.waitStable = d
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout, maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.manager.Acquire()
	if err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", contextError(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", contextError(ctx, err)
	}
	if f.waitStable > 0 {
		if err := page.WaitDOMStable(f.waitStable, 0); err != nil {
			return "", contextError(ctx, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", contextError(ctx, err)
	}

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser process.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// contextError prefers the context's error so callers can match
// context.DeadlineExceeded and context.Canceled.
func contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
