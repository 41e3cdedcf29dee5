package readability_test

import (
	"testing"

	"github.com/fwojciec/webretriever"
	"github.com/fwojciec/webretriever/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docPage = `<!DOCTYPE html>
<html>
<head><title>Endpoints</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/pricing">Pricing Nav Link</a></nav>
<article>
<h2>Creating an endpoint</h2>
<p>An endpoint is a hosted model that answers inference requests over HTTPS. Each endpoint has its own URL and scales with traffic.</p>
<p>Create an endpoint from the web console or with the command line client, then send requests with your access token.</p>
<pre><code>curl https://example.com/v1/chat</code></pre>
</article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().Extract("  \n ")

		require.Error(t, err)
		assert.Equal(t, webretriever.EINVALID, webretriever.ErrorCode(err))
	})

	t.Run("extracts title", func(t *testing.T) {
		t.Parallel()

		result, err := readability.NewExtractor().Extract(docPage)

		require.NoError(t, err)
		assert.Equal(t, "Endpoints", result.Title)
	})

	t.Run("keeps article content", func(t *testing.T) {
		t.Parallel()

		result, err := readability.NewExtractor().Extract(docPage)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "hosted model that answers inference requests")
		assert.Contains(t, result.ContentHTML, "curl https://example.com/v1/chat")
	})

	t.Run("drops navigation and footer", func(t *testing.T) {
		t.Parallel()

		result, err := readability.NewExtractor().Extract(docPage)

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "Home Nav Link")
		assert.NotContains(t, result.ContentHTML, "Footer copyright text")
	})

	t.Run("fails on page without text", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().Extract(`<html><head></head><body></body></html>`)

		require.Error(t, err)
	})
}
