package webretriever

import "context"

// Fetcher loads the HTML of a page. Browser-backed implementations return
// the DOM after scripts have run.
type Fetcher interface {
	// Fetch returns the page HTML. The context bounds the whole load.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases the browser or connections held by the fetcher.
	Close() error
}

// DomainLimiter throttles requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
