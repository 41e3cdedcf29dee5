// Package readability extracts the main content of a page with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/webretriever"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements webretriever.Extractor at compile time.
var _ webretriever.Extractor = (*Extractor)(nil)

// Extractor extracts the readable article of an HTML page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article title and content HTML. Pages without any
// readable text are reported as ENOTFOUND.
func (e *Extractor) Extract(rawHTML string) (*webretriever.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webretriever.Errorf(webretriever.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, webretriever.Errorf(webretriever.ENOTFOUND, "no readable content")
	}

	return &webretriever.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
