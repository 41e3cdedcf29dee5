package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/webretriever"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ webretriever.ChunkService = (*ChunkService)(nil)

// ChunkService implements webretriever.ChunkService using SQLite.
// Embeddings are stored as little-endian float32 blobs.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// CreateChunks stores chunks in a single transaction. Chunks without an ID
// get a generated one; chunks whose ID already exists are replaced.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*webretriever.Chunk) error {
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertChunks(ctx, tx, chunks); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceChunks deletes the chunks of a collection and stores chunks in the
// same transaction, so a failed insert keeps the previous chunks.
func (s *ChunkService) ReplaceChunks(ctx context.Context, collectionID string, chunks []*webretriever.Chunk) error {
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.CollectionID != collectionID {
			return webretriever.Errorf(webretriever.EINVALID, "chunk belongs to collection %q, not %q", c.CollectionID, collectionID)
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE collection_id = ?", collectionID); err != nil {
		return err
	}
	if err := insertChunks(ctx, tx, chunks); err != nil {
		return err
	}
	return tx.Commit()
}

func insertChunks(ctx context.Context, tx *sql.Tx, chunks []*webretriever.Chunk) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO chunks (id, collection_id, content, content_hash, embedding, source_url, title, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range chunks {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if _, err := stmt.ExecContext(ctx, c.ID, c.CollectionID, c.Content, hashContent(c.Content),
			encodeEmbedding(c.Embedding), c.Metadata.SourceURL, c.Metadata.Title, c.Metadata.Position, now); err != nil {
			return err
		}
	}
	return nil
}

// FindChunks retrieves chunks matching the filter, ordered by position.
func (s *ChunkService) FindChunks(ctx context.Context, filter webretriever.ChunkFilter) ([]*webretriever.Chunk, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, collection_id, content, embedding, source_url, title, position FROM chunks WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.CollectionID != nil {
		query.WriteString(" AND collection_id = ?")
		args = append(args, *filter.CollectionID)
	}

	query.WriteString(" ORDER BY position ASC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	return s.queryChunks(ctx, query.String(), args...)
}

func (s *ChunkService) queryChunks(ctx context.Context, query string, args ...any) ([]*webretriever.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*webretriever.Chunk
	for rows.Next() {
		var c webretriever.Chunk
		var blob []byte

		if err := rows.Scan(&c.ID, &c.CollectionID, &c.Content, &blob,
			&c.Metadata.SourceURL, &c.Metadata.Title, &c.Metadata.Position); err != nil {
			return nil, err
		}
		if c.Embedding, err = decodeEmbedding(blob); err != nil {
			return nil, err
		}

		chunks = append(chunks, &c)
	}

	return chunks, rows.Err()
}

// CountChunks returns the number of chunks stored in a collection.
func (s *ChunkService) CountChunks(ctx context.Context, collectionID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks WHERE collection_id = ?", collectionID).Scan(&n)
	return n, err
}

// DeleteChunksByCollection removes all chunks for a collection.
func (s *ChunkService) DeleteChunksByCollection(ctx context.Context, collectionID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE collection_id = ?", collectionID)
	return err
}
