package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/webretriever"
)

// Ensure URLSource implements webretriever.URLSource at compile time.
var _ webretriever.URLSource = (*URLSource)(nil)

// URLSource lists data source pages from a JSON URL file, or from the
// site's sitemaps when the data source names a sitemap URL.
type URLSource struct {
	// Dir resolves relative URL file paths.
	Dir string

	// Sitemaps is required only for data sources with a SitemapURL.
	Sitemaps webretriever.SitemapService
}

// Discover returns the page URLs of src in file or sitemap order.
func (s *URLSource) Discover(ctx context.Context, src webretriever.DataSource) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filter, err := src.URLFilter()
	if err != nil {
		return nil, err
	}

	if src.SitemapURL != "" {
		if s.Sitemaps == nil {
			return nil, webretriever.Errorf(webretriever.EINVALID, "data source %q: sitemap discovery is not configured", src.Name)
		}
		return s.Sitemaps.DiscoverURLs(ctx, src.SitemapURL, filter)
	}

	if src.URLFile == "" {
		return nil, webretriever.Errorf(webretriever.EINVALID, "data source %q has no URL file or sitemap", src.Name)
	}
	path := src.URLFile
	if !filepath.IsAbs(path) && s.Dir != "" {
		path = filepath.Join(s.Dir, path)
	}
	urls, err := ReadURLFile(path)
	if err != nil || filter == nil {
		return urls, err
	}

	matched := urls[:0]
	for _, u := range urls {
		if filter.Match(u) {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// ReadURLFile loads a JSON array of {"url": "..."} records. Records with an
// empty url are skipped.
func ReadURLFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, webretriever.Errorf(webretriever.ENOTFOUND, "URL file not found: %s", path)
		}
		return nil, err
	}

	var records []struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, webretriever.Errorf(webretriever.EINVALID, "invalid URL file %s: %v", path, err)
	}

	urls := make([]string, 0, len(records))
	for _, r := range records {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}
	return urls, nil
}
