package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/webretriever"
	"github.com/fwojciec/webretriever/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"https://example.com":                   "index.md",
		"https://example.com/":                  "index.md",
		"https://example.com/docs/":             "docs/index.md",
		"https://example.com/docs/api/users":    "docs/api/users.md",
		"https://example.com/docs/pods?tab=yml": "docs/pods.md",
	}
	for rawURL, want := range tests {
		t.Run(rawURL, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(rawURL)

			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	t.Run("rejects parent directory segments", func(t *testing.T) {
		t.Parallel()

		_, err := fs.URLToPath("https://example.com/docs/../../etc/passwd")

		require.Error(t, err)
		assert.Equal(t, webretriever.EINVALID, webretriever.ErrorCode(err))
	})
}

func TestParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("round trips formatted documents", func(t *testing.T) {
		t.Parallel()

		doc := webretriever.Document{
			SourceURL: "https://example.com/docs/pods",
			Title:     "Pods: an overview",
			Content:   "# Pods\n\nSeparated\n---\nby a rule.",
		}

		formatted, err := fs.FormatDocument(doc)
		require.NoError(t, err)
		got, err := fs.ParseDocument([]byte(formatted))

		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("treats plain text as content", func(t *testing.T) {
		t.Parallel()

		got, err := fs.ParseDocument([]byte("just text\n"))

		require.NoError(t, err)
		assert.Equal(t, webretriever.Document{Content: "just text\n"}, got)
	})

	t.Run("rejects unterminated frontmatter", func(t *testing.T) {
		t.Parallel()

		_, err := fs.ParseDocument([]byte("---\nsource: x\nno end"))

		require.Error(t, err)
		assert.Equal(t, webretriever.EINVALID, webretriever.ErrorCode(err))
	})
}

func TestReadDocument(t *testing.T) {
	t.Parallel()

	t.Run("reads text file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.txt")
		require.NoError(t, os.WriteFile(path, []byte("page body"), 0644))

		doc, err := fs.ReadDocument(path)

		require.NoError(t, err)
		assert.Equal(t, "page body", doc.Content)
	})

	t.Run("returns not found for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.ReadDocument(filepath.Join(t.TempDir(), "missing.md"))

		require.Error(t, err)
		assert.Equal(t, webretriever.ENOTFOUND, webretriever.ErrorCode(err))
	})
}
