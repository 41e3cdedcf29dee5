package mock

import (
	"context"

	"github.com/fwojciec/webretriever"
)

var _ webretriever.Transformer = (*Transformer)(nil)

// Transformer is a mock implementation of webretriever.Transformer.
type Transformer struct {
	TransformFn func(html string) (string, error)
}

func (t *Transformer) Transform(html string) (string, error) {
	return t.TransformFn(html)
}

var _ webretriever.Splitter = (*Splitter)(nil)

// Splitter is a mock implementation of webretriever.Splitter.
type Splitter struct {
	SplitFn func(docs []webretriever.Document) ([]webretriever.Document, error)
}

func (s *Splitter) Split(docs []webretriever.Document) ([]webretriever.Document, error) {
	return s.SplitFn(docs)
}

var _ webretriever.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webretriever.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*webretriever.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*webretriever.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ webretriever.Converter = (*Converter)(nil)

// Converter is a mock implementation of webretriever.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ webretriever.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of webretriever.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}

var _ webretriever.DocumentArchive = (*DocumentArchive)(nil)

// DocumentArchive is a mock implementation of webretriever.DocumentArchive.
type DocumentArchive struct {
	SaveFn   func(ctx context.Context, doc webretriever.Document) error
	CommitFn func() error
	AbortFn  func() error
}

func (a *DocumentArchive) Save(ctx context.Context, doc webretriever.Document) error {
	return a.SaveFn(ctx, doc)
}

func (a *DocumentArchive) Commit() error {
	return a.CommitFn()
}

func (a *DocumentArchive) Abort() error {
	return a.AbortFn()
}
