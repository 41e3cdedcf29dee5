// Package trafilatura extracts the main content of a page with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/webretriever"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webretriever.Extractor at compile time.
var _ webretriever.Extractor = (*Extractor)(nil)

// Extractor extracts main content, falling back to readability-style
// heuristics when trafilatura finds too little text.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract returns the page title and main content HTML. Pages where no
// content node is found are reported as ENOTFOUND.
func (e *Extractor) Extract(rawHTML string) (*webretriever.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webretriever.Errorf(webretriever.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}
	if result.ContentNode == nil {
		return nil, webretriever.Errorf(webretriever.ENOTFOUND, "no main content")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &webretriever.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: buf.String(),
	}, nil
}
