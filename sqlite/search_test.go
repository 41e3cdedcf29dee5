package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/webretriever"
	"github.com/fwojciec/webretriever/mock"
	"github.com/fwojciec/webretriever/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryEmbedder(vec []float32) *mock.Embedder {
	return &mock.Embedder{
		EmbedQueryFn: func(_ context.Context, _ string) ([]float32, error) {
			return vec, nil
		},
	}
}

func TestSearchService_Search(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, db *sqlite.DB) (*webretriever.Collection, *webretriever.Collection) {
		t.Helper()
		a := createCollection(t, db, "a")
		b := createCollection(t, db, "b")
		require.NoError(t, sqlite.NewChunkService(db).CreateChunks(context.Background(), []*webretriever.Chunk{
			{CollectionID: a.ID, Content: "east", Embedding: []float32{1, 0}, Metadata: webretriever.ChunkMetadata{Position: 0}},
			{CollectionID: a.ID, Content: "north", Embedding: []float32{0, 1}, Metadata: webretriever.ChunkMetadata{Position: 1}},
			{CollectionID: a.ID, Content: "northeast", Embedding: []float32{1, 1}, Metadata: webretriever.ChunkMetadata{Position: 2}},
			{CollectionID: a.ID, Content: "west", Embedding: []float32{-1, 0}, Metadata: webretriever.ChunkMetadata{Position: 3}},
			{CollectionID: b.ID, Content: "other", Embedding: []float32{1, 0}},
		}))
		return a, b
	}

	t.Run("orders results by cosine similarity", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		a, _ := seed(t, db)
		svc := sqlite.NewSearchService(db, queryEmbedder([]float32{2, 0}))

		results, err := svc.Search(context.Background(), "where", webretriever.SearchOptions{CollectionID: a.ID})
		require.NoError(t, err)
		require.Len(t, results, 4)

		var contents []string
		for _, r := range results {
			contents = append(contents, r.Chunk.Content)
		}
		assert.Equal(t, []string{"east", "northeast", "north", "west"}, contents)
		assert.InDelta(t, 1.0, results[0].Score, 1e-6)
		assert.InDelta(t, -1.0, results[3].Score, 1e-6)
	})

	t.Run("applies limit and minimum score", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		a, _ := seed(t, db)
		svc := sqlite.NewSearchService(db, queryEmbedder([]float32{1, 0}))
		ctx := context.Background()

		top, err := svc.Search(ctx, "q", webretriever.SearchOptions{CollectionID: a.ID, Limit: 2})
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "east", top[0].Chunk.Content)
		assert.Equal(t, "northeast", top[1].Chunk.Content)

		positive, err := svc.Search(ctx, "q", webretriever.SearchOptions{CollectionID: a.ID, MinScore: 0.5})
		require.NoError(t, err)
		assert.Len(t, positive, 2)
	})

	t.Run("equal scores keep stored order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		a, _ := seed(t, db)
		svc := sqlite.NewSearchService(db, queryEmbedder([]float32{0, 0}))

		results, err := svc.Search(context.Background(), "q", webretriever.SearchOptions{CollectionID: a.ID})
		require.NoError(t, err)
		require.Len(t, results, 4)
		assert.Equal(t, "east", results[0].Chunk.Content)
		assert.Equal(t, "west", results[3].Chunk.Content)
	})

	t.Run("searches every collection when none is given", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		seed(t, db)
		svc := sqlite.NewSearchService(db, queryEmbedder([]float32{1, 0}))

		results, err := svc.Search(context.Background(), "q", webretriever.SearchOptions{})
		require.NoError(t, err)
		assert.Len(t, results, 5)
	})

	t.Run("returns EINVALID for empty query", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSearchService(db, queryEmbedder([]float32{1}))

		_, err := svc.Search(context.Background(), "  ", webretriever.SearchOptions{})
		assert.Equal(t, webretriever.EINVALID, webretriever.ErrorCode(err))
	})

	t.Run("propagates embedder errors", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		boom := errors.New("boom")
		svc := sqlite.NewSearchService(db, &mock.Embedder{
			EmbedQueryFn: func(context.Context, string) ([]float32, error) { return nil, boom },
		})

		_, err := svc.Search(context.Background(), "q", webretriever.SearchOptions{})
		require.ErrorIs(t, err, boom)
	})
}
