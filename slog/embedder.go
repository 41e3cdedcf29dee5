package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webretriever"
)

// Ensure LoggingEmbedder implements webretriever.Embedder.
var _ webretriever.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with logging.
type LoggingEmbedder struct {
	next   webretriever.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next webretriever.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// EmbedDocuments delegates to the wrapped embedder and logs the batch size.
func (e *LoggingEmbedder) EmbedDocuments(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		e.logger.Info("embed documents",
			"texts", len(texts),
			"vectors", len(vectors),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.EmbedDocuments(ctx, texts)
}

// EmbedQuery delegates to the wrapped embedder.
func (e *LoggingEmbedder) EmbedQuery(ctx context.Context, text string) (vector []float32, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("embed query",
			"dims", len(vector),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.EmbedQuery(ctx, text)
}
