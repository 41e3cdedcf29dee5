package webretriever

// ExtractResult is the main content of a page with navigation, footers and
// other page chrome removed.
type ExtractResult struct {
	Title       string
	ContentHTML string
}

// Extractor finds the main content of a rendered HTML page. Returns
// ENOTFOUND when the page has no recognizable content.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter renders HTML as Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
