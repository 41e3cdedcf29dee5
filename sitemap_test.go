package webretriever_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/webretriever"
	"github.com/stretchr/testify/assert"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter matches everything", func(t *testing.T) {
		t.Parallel()

		var f *webretriever.URLFilter

		assert.True(t, f.Match("https://example.com/anything"))
	})

	t.Run("include restricts matches", func(t *testing.T) {
		t.Parallel()

		f := &webretriever.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)}}

		assert.True(t, f.Match("https://example.com/docs/setup"))
		assert.False(t, f.Match("https://example.com/blog/post"))
	})

	t.Run("exclude applies after include", func(t *testing.T) {
		t.Parallel()

		f := &webretriever.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`/docs/v1/`)},
		}

		assert.True(t, f.Match("https://example.com/docs/v2/setup"))
		assert.False(t, f.Match("https://example.com/docs/v1/setup"))
	})
}
