package webretriever

import (
	"context"
	"time"
)

// Collection is a storage namespace for the chunks of one data source.
type Collection struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the collection contains invalid fields.
func (c *Collection) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "collection name required")
	}
	return nil
}

// CollectionService represents a service for managing collections.
type CollectionService interface {
	// CreateCollection creates a new collection.
	// Returns ECONFLICT if a collection with the same name exists.
	CreateCollection(ctx context.Context, collection *Collection) error

	// FindCollectionByID retrieves a collection by ID.
	// Returns ENOTFOUND if the collection does not exist.
	FindCollectionByID(ctx context.Context, id string) (*Collection, error)

	// FindCollectionByName retrieves a collection by name.
	// Returns ENOTFOUND if the collection does not exist.
	FindCollectionByName(ctx context.Context, name string) (*Collection, error)

	// FindCollections retrieves collections matching the filter.
	FindCollections(ctx context.Context, filter CollectionFilter) ([]*Collection, error)

	// DeleteCollection permanently removes a collection and all its chunks.
	// Returns ENOTFOUND if the collection does not exist.
	DeleteCollection(ctx context.Context, id string) error
}

// CollectionFilter represents a filter for FindCollections.
type CollectionFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
