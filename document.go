package webretriever

import "context"

// Document is a unit of text flowing through the ingestion pipeline.
// Documents are values: stages that change content return new Documents
// rather than modifying the ones they were given.
type Document struct {
	Content   string `json:"content"`
	SourceURL string `json:"sourceUrl,omitempty"`
	Title     string `json:"title,omitempty"`
}

// Transformer turns rendered HTML into plain text suitable for chunking.
type Transformer interface {
	// Transform returns the text content of the HTML page.
	Transform(html string) (string, error)
}

// Splitter breaks documents into chunks of bounded size.
type Splitter interface {
	// Split returns the chunks of every document in order. Each chunk keeps
	// the SourceURL and Title of the document it came from.
	Split(docs []Document) ([]Document, error)
}

// DocumentArchive keeps a snapshot of the transformed pages of one
// ingestion run. Saved documents become visible only after Commit.
type DocumentArchive interface {
	Save(ctx context.Context, doc Document) error

	// Commit replaces the previous snapshot with the saved documents.
	Commit() error

	// Abort discards the saved documents and keeps the previous snapshot.
	Abort() error
}
