package langchaingo

import (
	"context"
	"fmt"
	"slices"

	"github.com/fwojciec/webretriever"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Default embedder settings.
const (
	DefaultEmbeddingModel = "text-embedding-ada-002"
	DefaultBatchSize      = 512
	DefaultCacheSize      = 256
)

// Compile-time interface verification.
var _ webretriever.Embedder = (*Embedder)(nil)

// Embedder wraps a langchaingo embedder. Query vectors are kept in an LRU
// cache so repeated questions skip the remote call.
type Embedder struct {
	impl  embeddings.Embedder
	cache *lru.Cache[string, []float32]
}

// NewEmbedder wraps impl. A cacheSize of zero disables the query cache.
func NewEmbedder(impl embeddings.Embedder, cacheSize int) (*Embedder, error) {
	e := &Embedder{impl: impl}
	if cacheSize > 0 {
		cache, err := lru.New[string, []float32](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("init embedding cache: %w", err)
		}
		e.cache = cache
	}
	return e, nil
}

// EmbedderConfig configures an OpenAI embedder.
type EmbedderConfig struct {
	Token     string
	Model     string
	BaseURL   string
	BatchSize int
	CacheSize int
}

// NewOpenAIEmbedder builds an Embedder backed by the OpenAI embeddings API.
func NewOpenAIEmbedder(cfg EmbedderConfig) (*Embedder, error) {
	if cfg.Token == "" {
		return nil, webretriever.Errorf(webretriever.EINVALID, "embedder token required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultEmbeddingModel
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	opts := []openai.Option{
		openai.WithToken(cfg.Token),
		openai.WithEmbeddingModel(model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("init openai client: %w", err)
	}

	impl, err := embeddings.NewEmbedder(client, embeddings.WithBatchSize(batch))
	if err != nil {
		return nil, fmt.Errorf("init openai embedder: %w", err)
	}

	return NewEmbedder(impl, cfg.CacheSize)
}

// EmbedDocuments returns one vector per text.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vectors, err := e.impl.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %d documents: %w", len(texts), err)
	}
	if len(vectors) != len(texts) {
		return nil, webretriever.Errorf(webretriever.EINTERNAL, "embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}
	return vectors, nil
}

// EmbedQuery returns the vector of a search query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if v, ok := e.lookup(text); ok {
		return v, nil
	}
	v, err := e.impl.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	e.store(text, v)
	return slices.Clone(v), nil
}

func (e *Embedder) lookup(text string) ([]float32, bool) {
	if e.cache == nil {
		return nil, false
	}
	v, ok := e.cache.Get(text)
	if !ok {
		return nil, false
	}
	return slices.Clone(v), true
}

func (e *Embedder) store(text string, v []float32) {
	if e.cache == nil {
		return
	}
	e.cache.Add(text, slices.Clone(v))
}
