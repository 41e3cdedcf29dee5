package http

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/webretriever"
)

// Ensure SitemapService implements webretriever.SitemapService.
var _ webretriever.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the page URLs listed in the site's sitemaps, in
// sitemap order without duplicates. Sitemaps come from robots.txt Sitemap
// directives, or /sitemap.xml when robots.txt has none.
//
// When baseURL has a path, only URLs under that path are returned. A site
// without sitemaps yields an empty, non-nil slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *webretriever.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, webretriever.Errorf(webretriever.EINVALID, "invalid base URL %q", baseURL)
	}

	prefix := strings.TrimSuffix(base.Path, "/")
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemaps, err := s.sitemapLocations(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalk{svc: s, visited: map[string]bool{}, seen: map[string]bool{}}
	for _, loc := range sitemaps {
		if err := w.visit(ctx, loc); err != nil {
			return nil, err
		}
	}

	urls := make([]string, 0, len(w.urls))
	for _, u := range w.urls {
		if prefix != "" && !underPath(u, prefix) {
			continue
		}
		if !filter.Match(u) {
			continue
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// sitemapLocations reads Sitemap directives from robots.txt, falling back
// to /sitemap.xml if it exists.
func (s *SitemapService) sitemapLocations(ctx context.Context, root *url.URL) ([]string, error) {
	if locs := s.robotsSitemaps(ctx, root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()); len(locs) > 0 {
		return locs, nil
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fallback, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	return []string{fallback}, nil
}

// robotsSitemaps returns nil when robots.txt is missing or unreadable.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) []string {
	body, err := get(ctx, s.client, robotsURL, "")
	if err != nil {
		return nil
	}
	defer body.Close()

	var locs []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if loc := strings.TrimSpace(value); loc != "" {
			locs = append(locs, loc)
		}
	}
	if scanner.Err() != nil {
		return nil
	}
	return locs
}

type sitemapWalk struct {
	svc     *SitemapService
	visited map[string]bool
	seen    map[string]bool
	urls    []string
}

// visit reads a urlset or, for a sitemapindex, each nested sitemap.
func (w *sitemapWalk) visit(ctx context.Context, loc string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[loc] {
		return nil
	}
	w.visited[loc] = true

	body, err := get(ctx, w.svc.client, loc, "")
	if err != nil {
		return fmt.Errorf("fetching sitemap: %w", err)
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return fmt.Errorf("parsing sitemap %s: %w", loc, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("empty sitemap %s", loc)
	}

	if root.Tag == "sitemapindex" {
		for _, child := range locs(root, "sitemap") {
			if err := w.visit(ctx, child); err != nil {
				return err
			}
		}
		return nil
	}

	for _, u := range locs(root, "url") {
		if !w.seen[u] {
			w.seen[u] = true
			w.urls = append(w.urls, u)
		}
	}
	return nil
}

// locs returns the non-empty <loc> values of the named children of root.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// underPath reports whether rawURL's path is prefix or below it, on a path
// segment boundary: /docs matches /docs/intro but not /documentation.
func underPath(rawURL, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p := strings.TrimSuffix(u.Path, "/")
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}
