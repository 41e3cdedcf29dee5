//go:build integration

package tiktoken_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/webretriever/tiktoken"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_Integration(t *testing.T) {
	t.Parallel()

	c, err := tiktoken.NewCounter("")
	require.NoError(t, err)

	t.Run("counts known strings", func(t *testing.T) {
		t.Parallel()

		n, err := c.CountTokens(context.Background(), "hello world")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 0, c.Len(""))
	})

	t.Run("encodes special tokens as text", func(t *testing.T) {
		t.Parallel()

		assert.Greater(t, c.Len("<|endoftext|>"), 1)
	})

	t.Run("grows with text length", func(t *testing.T) {
		t.Parallel()

		short := c.Len("endpoint")
		long := c.Len(strings.Repeat("endpoint ", 100))
		assert.Greater(t, long, short*50)
	})

	t.Run("respects canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.CountTokens(ctx, "x")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewCounter_UnknownEncoding(t *testing.T) {
	t.Parallel()

	_, err := tiktoken.NewCounter("no_such_encoding")
	require.Error(t, err)
}
