// Package langchaingo adapts github.com/tmc/langchaingo text splitting,
// embeddings and chat models to webretriever interfaces.
package langchaingo

import (
	"fmt"
	"unicode/utf8"

	"github.com/fwojciec/webretriever"
	"github.com/tmc/langchaingo/textsplitter"
)

// Default splitter settings.
const (
	DefaultChunkSize    = 1300
	DefaultChunkOverlap = 0
)

// Compile-time interface verification.
var _ webretriever.Splitter = (*Splitter)(nil)

// Splitter splits documents with a recursive character splitter whose
// chunk size is measured by LenFunc.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int

	// LenFunc measures chunk length. Defaults to counting runes.
	LenFunc func(string) int
}

// NewSplitter returns a Splitter with default chunk settings measuring
// length with lenFunc.
func NewSplitter(lenFunc func(string) int) *Splitter {
	return &Splitter{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		LenFunc:      lenFunc,
	}
}

// Split returns the chunks of every document in order.
func (s *Splitter) Split(docs []webretriever.Document) ([]webretriever.Document, error) {
	if s.ChunkSize < 1 {
		return nil, webretriever.Errorf(webretriever.EINVALID, "chunk size must be at least 1, got %d", s.ChunkSize)
	}
	if s.ChunkOverlap < 0 || s.ChunkOverlap >= s.ChunkSize {
		return nil, webretriever.Errorf(webretriever.EINVALID, "chunk overlap must be in [0, %d), got %d", s.ChunkSize, s.ChunkOverlap)
	}

	lenFunc := s.LenFunc
	if lenFunc == nil {
		lenFunc = utf8.RuneCountInString
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(s.ChunkSize),
		textsplitter.WithChunkOverlap(s.ChunkOverlap),
		textsplitter.WithLenFunc(lenFunc),
	)

	var out []webretriever.Document
	for _, doc := range docs {
		parts, err := splitter.SplitText(doc.Content)
		if err != nil {
			return nil, fmt.Errorf("splitting %s: %w", doc.SourceURL, err)
		}
		for _, p := range parts {
			out = append(out, webretriever.Document{
				Content:   p,
				SourceURL: doc.SourceURL,
				Title:     doc.Title,
			})
		}
	}
	return out, nil
}
