package mock

import (
	"context"

	"github.com/fwojciec/webretriever"
)

var _ webretriever.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of webretriever.ChunkService.
type ChunkService struct {
	CreateChunksFn             func(ctx context.Context, chunks []*webretriever.Chunk) error
	FindChunksFn               func(ctx context.Context, filter webretriever.ChunkFilter) ([]*webretriever.Chunk, error)
	CountChunksFn              func(ctx context.Context, collectionID string) (int, error)
	DeleteChunksByCollectionFn func(ctx context.Context, collectionID string) error
	ReplaceChunksFn            func(ctx context.Context, collectionID string, chunks []*webretriever.Chunk) error
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*webretriever.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) FindChunks(ctx context.Context, filter webretriever.ChunkFilter) ([]*webretriever.Chunk, error) {
	return s.FindChunksFn(ctx, filter)
}

func (s *ChunkService) CountChunks(ctx context.Context, collectionID string) (int, error) {
	return s.CountChunksFn(ctx, collectionID)
}

func (s *ChunkService) DeleteChunksByCollection(ctx context.Context, collectionID string) error {
	return s.DeleteChunksByCollectionFn(ctx, collectionID)
}

func (s *ChunkService) ReplaceChunks(ctx context.Context, collectionID string, chunks []*webretriever.Chunk) error {
	return s.ReplaceChunksFn(ctx, collectionID, chunks)
}

var _ webretriever.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of webretriever.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts webretriever.SearchOptions) ([]webretriever.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts webretriever.SearchOptions) ([]webretriever.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}

var _ webretriever.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of webretriever.Embedder.
type Embedder struct {
	EmbedDocumentsFn func(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQueryFn     func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedDocumentsFn(ctx, texts)
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedQueryFn(ctx, text)
}
