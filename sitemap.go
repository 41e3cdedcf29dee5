package webretriever

import (
	"context"
	"regexp"
)

// SitemapService lists the page URLs a site publishes in its sitemaps.
type SitemapService interface {
	// DiscoverURLs reads the sitemaps announced in robots.txt, or
	// /sitemap.xml, following sitemap indexes. Only URLs under the path of
	// baseURL that pass filter are returned. A nil filter passes everything.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter restricts discovered URLs with regular expressions.
type URLFilter struct {
	// Include, when not empty, keeps only URLs matching one of the patterns.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern, after Include.
	Exclude []*regexp.Regexp
}

// Match reports whether url passes the filter. A nil filter passes all URLs.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 && !anyMatch(f.Include, url) {
		return false
	}
	return !anyMatch(f.Exclude, url)
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
