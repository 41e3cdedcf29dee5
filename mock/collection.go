package mock

import (
	"context"

	"github.com/fwojciec/webretriever"
)

var _ webretriever.CollectionService = (*CollectionService)(nil)

// CollectionService is a mock implementation of webretriever.CollectionService.
type CollectionService struct {
	CreateCollectionFn     func(ctx context.Context, collection *webretriever.Collection) error
	FindCollectionByIDFn   func(ctx context.Context, id string) (*webretriever.Collection, error)
	FindCollectionByNameFn func(ctx context.Context, name string) (*webretriever.Collection, error)
	FindCollectionsFn      func(ctx context.Context, filter webretriever.CollectionFilter) ([]*webretriever.Collection, error)
	DeleteCollectionFn     func(ctx context.Context, id string) error
}

func (s *CollectionService) CreateCollection(ctx context.Context, collection *webretriever.Collection) error {
	return s.CreateCollectionFn(ctx, collection)
}

func (s *CollectionService) FindCollectionByID(ctx context.Context, id string) (*webretriever.Collection, error) {
	return s.FindCollectionByIDFn(ctx, id)
}

func (s *CollectionService) FindCollectionByName(ctx context.Context, name string) (*webretriever.Collection, error) {
	return s.FindCollectionByNameFn(ctx, name)
}

func (s *CollectionService) FindCollections(ctx context.Context, filter webretriever.CollectionFilter) ([]*webretriever.Collection, error) {
	return s.FindCollectionsFn(ctx, filter)
}

func (s *CollectionService) DeleteCollection(ctx context.Context, id string) error {
	return s.DeleteCollectionFn(ctx, id)
}
