package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/webretriever"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ webretriever.CollectionService = (*CollectionService)(nil)

// CollectionService implements webretriever.CollectionService using SQLite.
type CollectionService struct {
	db *DB
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(db *DB) *CollectionService {
	return &CollectionService{db: db}
}

// CreateCollection creates a new collection.
func (s *CollectionService) CreateCollection(ctx context.Context, collection *webretriever.Collection) error {
	if err := collection.Validate(); err != nil {
		return err
	}

	if _, err := s.FindCollectionByName(ctx, collection.Name); err == nil {
		return webretriever.Errorf(webretriever.ECONFLICT, "collection %q already exists", collection.Name)
	} else if webretriever.ErrorCode(err) != webretriever.ENOTFOUND {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	collection.ID = uuid.New().String()
	collection.CreatedAt = now
	collection.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, collection.ID, collection.Name, now.Format(time.RFC3339), now.Format(time.RFC3339))

	return err
}

// FindCollectionByID retrieves a collection by ID.
func (s *CollectionService) FindCollectionByID(ctx context.Context, id string) (*webretriever.Collection, error) {
	return s.findOne(ctx, "id", id)
}

// FindCollectionByName retrieves a collection by name.
func (s *CollectionService) FindCollectionByName(ctx context.Context, name string) (*webretriever.Collection, error) {
	return s.findOne(ctx, "name", name)
}

func (s *CollectionService) findOne(ctx context.Context, column, value string) (*webretriever.Collection, error) {
	var c webretriever.Collection
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM collections WHERE "+column+" = ?", value,
	).Scan(&c.ID, &c.Name, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, webretriever.Errorf(webretriever.ENOTFOUND, "collection not found")
	}
	if err != nil {
		return nil, err
	}

	if c.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &c, nil
}

// FindCollections retrieves collections matching the filter, ordered by name.
func (s *CollectionService) FindCollections(ctx context.Context, filter webretriever.CollectionFilter) ([]*webretriever.Collection, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, created_at, updated_at FROM collections WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []*webretriever.Collection
	for rows.Next() {
		var c webretriever.Collection
		var createdAt, updatedAt string

		if err := rows.Scan(&c.ID, &c.Name, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if c.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		collections = append(collections, &c)
	}

	return collections, rows.Err()
}

// DeleteCollection permanently removes a collection. Its chunks are removed
// by the foreign key cascade.
func (s *CollectionService) DeleteCollection(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM collections WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return webretriever.Errorf(webretriever.ENOTFOUND, "collection not found")
	}

	return nil
}
