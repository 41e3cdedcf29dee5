package ingest

import (
	"strings"

	"github.com/fwojciec/webretriever"
)

var _ webretriever.Transformer = (*ExtractTransformer)(nil)

// ExtractTransformer turns a page into Markdown by extracting its main
// content and converting that to Markdown. The page title becomes a
// top-level heading unless the content already starts with a heading.
type ExtractTransformer struct {
	Extractor webretriever.Extractor
	Converter webretriever.Converter
}

// Transform implements webretriever.Transformer.
func (t *ExtractTransformer) Transform(html string) (string, error) {
	extracted, err := t.Extractor.Extract(html)
	if err != nil {
		return "", err
	}

	md, err := t.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return "", err
	}

	if extracted.Title != "" && !strings.HasPrefix(md, "#") {
		md = "# " + extracted.Title + "\n\n" + md
	}
	return md, nil
}
