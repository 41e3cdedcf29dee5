// Package goquery turns rendered HTML into plain text with goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webretriever"
)

// Ensure TagTransformer implements webretriever.Transformer at compile time.
var _ webretriever.Transformer = (*TagTransformer)(nil)

// DefaultTags are the elements whose text is kept when Tags is empty.
var DefaultTags = []string{"div"}

// droppedTags never contribute text.
const droppedTags = "script, style, noscript, template"

// TagTransformer keeps the text of selected elements and discards the rest
// of the page.
type TagTransformer struct {
	// Tags names the elements to keep. Nested matches are only counted once,
	// through their outermost matching ancestor.
	Tags []string
}

// NewTagTransformer creates a TagTransformer for tags, or DefaultTags when
// none are given.
func NewTagTransformer(tags ...string) *TagTransformer {
	return &TagTransformer{Tags: tags}
}

// Transform returns the text of every outermost matching element, one
// element per line, with whitespace runs collapsed to single spaces.
// Elements without text are skipped.
func (t *TagTransformer) Transform(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", webretriever.Errorf(webretriever.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(droppedTags).Remove()

	selector := t.selector()
	var lines []string
	doc.Find(selector).
		FilterFunction(func(_ int, sel *goquery.Selection) bool {
			return sel.ParentsFiltered(selector).Length() == 0
		}).
		Each(func(_ int, sel *goquery.Selection) {
			if text := collapse(sel.Text()); text != "" {
				lines = append(lines, text)
			}
		})

	return strings.Join(lines, "\n"), nil
}

func (t *TagTransformer) selector() string {
	tags := t.Tags
	if len(tags) == 0 {
		tags = DefaultTags
	}
	return strings.Join(tags, ", ")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
