package sqlite

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/webretriever"
	"gonum.org/v1/gonum/mat"
)

// Compile-time interface verification.
var _ webretriever.SearchService = (*SearchService)(nil)

// SearchService ranks stored chunks by cosine similarity to the embedded
// query. Every chunk of the collection is scored.
type SearchService struct {
	chunks   *ChunkService
	embedder webretriever.Embedder
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB, embedder webretriever.Embedder) *SearchService {
	return &SearchService{chunks: NewChunkService(db), embedder: embedder}
}

// Search returns chunks ordered by descending similarity. Chunks with equal
// scores keep their stored order.
func (s *SearchService) Search(ctx context.Context, query string, opts webretriever.SearchOptions) ([]webretriever.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, webretriever.Errorf(webretriever.EINVALID, "search query required")
	}

	vec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	filter := webretriever.ChunkFilter{}
	if opts.CollectionID != "" {
		filter.CollectionID = &opts.CollectionID
	}
	chunks, err := s.chunks.FindChunks(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]webretriever.SearchResult, 0, len(chunks))
	for _, c := range chunks {
		score := cosineSimilarity(vec, c.Embedding)
		if opts.MinScore != 0 && score < opts.MinScore {
			continue
		}
		results = append(results, webretriever.SearchResult{Chunk: c, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}

// cosineSimilarity returns 0 for vectors of different length or zero norm.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	va := mat.NewVecDense(len(a), toFloat64(a))
	vb := mat.NewVecDense(len(b), toFloat64(b))

	norms := mat.Norm(va, 2) * mat.Norm(vb, 2)
	if norms == 0 {
		return 0
	}

	return float32(mat.Dot(va, vb) / norms)
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
