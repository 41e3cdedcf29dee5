package mock

import (
	"context"

	"github.com/fwojciec/webretriever"
)

var _ webretriever.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of webretriever.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ webretriever.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of webretriever.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ webretriever.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of webretriever.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, src webretriever.DataSource) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, src webretriever.DataSource) ([]string, error) {
	return s.DiscoverFn(ctx, src)
}

var _ webretriever.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of webretriever.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *webretriever.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *webretriever.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
