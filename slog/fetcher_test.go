package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/webretriever/mock"
	wrslog "github.com/fwojciec/webretriever/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textLogger returns a logger writing text records at level and above.
func textLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})), buf
}

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	page := func(context.Context, string) (string, error) { return "<div>Endpoints</div>", nil }

	t.Run("records url, size and duration of a fetch", func(t *testing.T) {
		t.Parallel()

		logger, buf := textLogger(slog.LevelDebug)
		f := wrslog.NewLoggingFetcher(&mock.Fetcher{FetchFn: page}, logger)

		html, err := f.Fetch(context.Background(), "https://octo.ai/docs/endpoints")

		require.NoError(t, err)
		assert.Equal(t, "<div>Endpoints</div>", html)
		assert.Contains(t, buf.String(), "level=DEBUG msg=fetch url=https://octo.ai/docs/endpoints bytes=20 duration=")
	})

	t.Run("records the fetch error and returns it", func(t *testing.T) {
		t.Parallel()

		logger, buf := textLogger(slog.LevelDebug)
		timeout := errors.New("navigation timeout")
		f := wrslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) { return "", timeout },
		}, logger)

		_, err := f.Fetch(context.Background(), "https://octo.ai/docs/slow")

		assert.ErrorIs(t, err, timeout)
		assert.Contains(t, buf.String(), `bytes=0`)
		assert.Contains(t, buf.String(), `err="navigation timeout"`)
	})

	t.Run("stays quiet above debug level", func(t *testing.T) {
		t.Parallel()

		logger, buf := textLogger(slog.LevelInfo)
		f := wrslog.NewLoggingFetcher(&mock.Fetcher{FetchFn: page}, logger)

		_, err := f.Fetch(context.Background(), "https://octo.ai/docs")

		require.NoError(t, err)
		assert.Zero(t, buf.Len())
	})

	t.Run("closes the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		logger, _ := textLogger(slog.LevelDebug)
		closed := 0
		f := wrslog.NewLoggingFetcher(&mock.Fetcher{CloseFn: func() error { closed++; return nil }}, logger)

		require.NoError(t, f.Close())
		assert.Equal(t, 1, closed)
	})
}
