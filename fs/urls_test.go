package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/webretriever"
	"github.com/fwojciec/webretriever/fs"
	"github.com/fwojciec/webretriever/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeURLFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, filepath.Dir(name)), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestURLSource_Discover(t *testing.T) {
	t.Parallel()

	t.Run("reads URL file relative to dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeURLFile(t, dir, "data/docs.json", `[{"url": "https://example.com/a"}, {"url": ""}, {"url": "https://example.com/b"}]`)
		src := &fs.URLSource{Dir: dir}

		urls, err := src.Discover(context.Background(), webretriever.DataSource{Name: "docs", URLFile: "data/docs.json"})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, urls)
	})

	t.Run("prefers sitemap when configured", func(t *testing.T) {
		t.Parallel()

		var gotBase string
		src := &fs.URLSource{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(_ context.Context, baseURL string, _ *webretriever.URLFilter) ([]string, error) {
					gotBase = baseURL
					return []string{"https://example.com/docs/x"}, nil
				},
			},
		}

		urls, err := src.Discover(context.Background(), webretriever.DataSource{
			Name:       "docs",
			URLFile:    "ignored.json",
			SitemapURL: "https://example.com/docs",
		})

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/docs", gotBase)
		assert.Equal(t, []string{"https://example.com/docs/x"}, urls)
	})

	t.Run("applies include and exclude patterns to URL files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeURLFile(t, dir, "urls.json", `[{"url": "https://example.com/docs/a"}, {"url": "https://example.com/blog/b"}, {"url": "https://example.com/docs/old/c"}]`)
		src := &fs.URLSource{Dir: dir}

		urls, err := src.Discover(context.Background(), webretriever.DataSource{
			Name:    "docs",
			URLFile: "urls.json",
			Include: []string{"/docs/"},
			Exclude: []string{"/old/"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/docs/a"}, urls)
	})

	t.Run("passes patterns to sitemap discovery", func(t *testing.T) {
		t.Parallel()

		var gotFilter *webretriever.URLFilter
		src := &fs.URLSource{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(_ context.Context, _ string, filter *webretriever.URLFilter) ([]string, error) {
					gotFilter = filter
					return nil, nil
				},
			},
		}

		_, err := src.Discover(context.Background(), webretriever.DataSource{
			SitemapURL: "https://example.com",
			Exclude:    []string{"/blog/"},
		})

		require.NoError(t, err)
		require.NotNil(t, gotFilter)
		assert.False(t, gotFilter.Match("https://example.com/blog/post"))
		assert.True(t, gotFilter.Match("https://example.com/docs/intro"))
	})

	t.Run("malformed pattern is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := (&fs.URLSource{}).Discover(context.Background(), webretriever.DataSource{
			URLFile: "urls.json",
			Include: []string{"("},
		})

		assert.Equal(t, webretriever.EINVALID, webretriever.ErrorCode(err))
	})

	t.Run("sitemap source without sitemap service is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := (&fs.URLSource{}).Discover(context.Background(), webretriever.DataSource{SitemapURL: "https://example.com"})

		require.Error(t, err)
		assert.Equal(t, webretriever.EINVALID, webretriever.ErrorCode(err))
	})

	t.Run("data source without URL file is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := (&fs.URLSource{}).Discover(context.Background(), webretriever.DataSource{Name: "empty"})

		require.Error(t, err)
		assert.Equal(t, webretriever.EINVALID, webretriever.ErrorCode(err))
	})

	t.Run("missing URL file is not found", func(t *testing.T) {
		t.Parallel()

		src := &fs.URLSource{Dir: t.TempDir()}

		_, err := src.Discover(context.Background(), webretriever.DataSource{URLFile: "missing.json"})

		require.Error(t, err)
		assert.Equal(t, webretriever.ENOTFOUND, webretriever.ErrorCode(err))
	})

	t.Run("malformed URL file is invalid", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeURLFile(t, dir, "bad.json", `{"url": "not an array"}`)

		_, err := (&fs.URLSource{Dir: dir}).Discover(context.Background(), webretriever.DataSource{URLFile: "bad.json"})

		require.Error(t, err)
		assert.Equal(t, webretriever.EINVALID, webretriever.ErrorCode(err))
	})
}
