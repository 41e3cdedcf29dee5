package webretriever

import (
	"context"
)

// Chunk is a piece of a document stored in the vector index.
type Chunk struct {
	ID           string        `json:"id"`
	CollectionID string        `json:"collectionId"`
	Content      string        `json:"content"`
	Embedding    []float32     `json:"embedding,omitempty"`
	Metadata     ChunkMetadata `json:"metadata"`
}

// ChunkMetadata contains contextual information about a chunk.
type ChunkMetadata struct {
	// Source URL for citation
	SourceURL string `json:"sourceUrl,omitempty"`

	// Title of the page the chunk came from
	Title string `json:"title,omitempty"`

	// Position of the chunk within the ingested batch
	Position int `json:"position"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.CollectionID == "" {
		return Errorf(EINVALID, "chunk collection ID required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	if len(c.Embedding) == 0 {
		return Errorf(EINVALID, "chunk embedding required")
	}
	return nil
}

// ChunkService represents a service for managing chunks.
type ChunkService interface {
	// CreateChunks stores chunks in a batch. Chunks with an ID that already
	// exists are replaced.
	CreateChunks(ctx context.Context, chunks []*Chunk) error

	// FindChunks retrieves chunks matching the filter.
	FindChunks(ctx context.Context, filter ChunkFilter) ([]*Chunk, error)

	// CountChunks returns the number of chunks stored in a collection.
	CountChunks(ctx context.Context, collectionID string) (int, error)

	// DeleteChunksByCollection removes all chunks for a collection.
	DeleteChunksByCollection(ctx context.Context, collectionID string) error

	// ReplaceChunks swaps the chunks of a collection for chunks atomically.
	// On error the previous chunks remain.
	ReplaceChunks(ctx context.Context, collectionID string, chunks []*Chunk) error
}

// ChunkFilter represents a filter for FindChunks.
type ChunkFilter struct {
	ID           *string `json:"id"`
	CollectionID *string `json:"collectionId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SearchService provides semantic search over chunks.
type SearchService interface {
	// Search performs semantic search over chunks.
	// Returns chunks ordered by relevance to the query.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Restrict results to one collection
	CollectionID string `json:"collectionId,omitempty"`

	// Maximum number of results to return
	Limit int `json:"limit,omitempty"`

	// Minimum similarity score (-1 to 1)
	MinScore float32 `json:"minScore,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}

// Embedder turns text into embedding vectors.
type Embedder interface {
	// EmbedDocuments returns one vector per text, in order.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery returns the vector of a search query.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
