package ingest

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/webretriever"
	"golang.org/x/time/rate"
)

var _ webretriever.DomainLimiter = (*DomainLimiter)(nil)

// DefaultRequestsPerSecond is the per-domain fetch rate used by the CLI.
const DefaultRequestsPerSecond = 5

// DomainLimiter provides per-domain rate limiting using token buckets.
// Requests to different domains never wait on each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter allowing rps requests per
// second to each domain, with a burst of 1. A non-positive rps disables
// limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.rps <= 0 {
		return ctx.Err()
	}

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// domainOf returns the host of rawURL, or rawURL itself when it has none.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
