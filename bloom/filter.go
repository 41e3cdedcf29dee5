// Package bloom tracks already-seen URLs with a Bloom filter.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Default sizing for a documentation site.
const (
	DefaultExpectedURLs      = 10000
	DefaultFalsePositiveRate = 0.001
)

// Filter is a concurrency-safe seen-set of URLs. The Bloom filter answers
// for URLs it has never seen; its hits are confirmed against the recorded
// URLs, so Seen never mistakes a new URL for a seen one.
type Filter struct {
	mu   sync.Mutex
	f    *bloom.BloomFilter
	seen map[string]struct{}
}

// NewFilter creates a Filter sized for n expected URLs with the given false
// positive rate. Zero values use the defaults.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = DefaultExpectedURLs
	}
	if fpRate <= 0 {
		fpRate = DefaultFalsePositiveRate
	}
	return &Filter{
		f:    bloom.NewWithEstimates(n, fpRate),
		seen: make(map[string]struct{}),
	}
}

// Seen records url and reports whether it was recorded before.
func (f *Filter) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.f.TestAndAddString(url) {
		if _, ok := f.seen[url]; ok {
			return true
		}
	}
	f.seen[url] = struct{}{}
	return false
}

// Dedupe returns urls without the ones already seen, recording the rest.
// Order is preserved.
func (f *Filter) Dedupe(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if !f.Seen(u) {
			out = append(out, u)
		}
	}
	return out
}

// Len returns the number of distinct URLs recorded.
func (f *Filter) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}
