//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/webretriever"
	"github.com/fwojciec/webretriever/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docsServer serves a few pages shaped like client-rendered documentation.
func docsServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/endpoints", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Endpoints</title></head><body>
<nav>Docs Home Guides</nav><div id="main">Loading...</div>
<script>document.getElementById('main').textContent = 'An endpoint serves a model';</script>
</body></html>`))
	})
	mux.HandleFunc("/hydrated", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><div id="main"></div>
<script>setTimeout(() => { document.getElementById('main').textContent = 'Cold starts take seconds'; }, 200);</script>
</body></html>`))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newFetcher(t *testing.T, opts ...rod.Option) *rod.Fetcher {
	t.Helper()
	f, err := rod.NewFetcher(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := docsServer(t)

	t.Run("returns the DOM after scripts ran", func(t *testing.T) {
		t.Parallel()

		html, err := newFetcher(t).Fetch(context.Background(), srv.URL+"/endpoints")

		require.NoError(t, err)
		assert.Contains(t, html, "An endpoint serves a model")
		assert.NotContains(t, html, "Loading...")
	})

	t.Run("waits for a stable DOM when asked", func(t *testing.T) {
		t.Parallel()

		f := newFetcher(t, rod.WithWaitStable(500*time.Millisecond))

		html, err := f.Fetch(context.Background(), srv.URL+"/hydrated")

		require.NoError(t, err)
		assert.Contains(t, html, "Cold starts take seconds")
	})

	t.Run("gives up on a page slower than the fetch timeout", func(t *testing.T) {
		t.Parallel()

		f := newFetcher(t, rod.WithFetchTimeout(100*time.Millisecond))

		_, err := f.Fetch(context.Background(), srv.URL+"/slow")

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("reports a canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newFetcher(t).Fetch(ctx, srv.URL+"/slow")

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("starts a new browser after max pages", func(t *testing.T) {
		t.Parallel()

		f := newFetcher(t, rod.WithMaxPages(2))
		before := f.LauncherPID()

		for range 3 {
			_, err := f.Fetch(context.Background(), srv.URL+"/endpoints")
			require.NoError(t, err)
		}

		assert.NotEqual(t, before, f.LauncherPID())
	})
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	f, err := rod.NewFetcher()
	require.NoError(t, err)

	require.NoError(t, f.Close())
	require.NoError(t, f.Close(), "second close")
	assert.Zero(t, f.LauncherPID())

	_, err = f.Fetch(context.Background(), "https://octo.ai/docs")
	assert.Equal(t, webretriever.EINVALID, webretriever.ErrorCode(err))
}
