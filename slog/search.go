package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webretriever"
)

// Ensure LoggingSearchService implements webretriever.SearchService.
var _ webretriever.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging.
type LoggingSearchService struct {
	next   webretriever.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next webretriever.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the best score.
func (s *LoggingSearchService) Search(ctx context.Context, query string, opts webretriever.SearchOptions) (results []webretriever.SearchResult, err error) {
	defer func(begin time.Time) {
		var top float32
		if len(results) > 0 {
			top = results[0].Score
		}
		s.logger.Info("search",
			"collection", opts.CollectionID,
			"limit", opts.Limit,
			"results", len(results),
			"top_score", top,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}
