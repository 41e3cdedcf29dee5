package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webretriever"
)

// Ensure LoggingChatModel implements webretriever.ChatModel.
var _ webretriever.ChatModel = (*LoggingChatModel)(nil)

// LoggingChatModel wraps a ChatModel with logging.
type LoggingChatModel struct {
	next   webretriever.ChatModel
	logger *slog.Logger
}

// NewLoggingChatModel creates a new LoggingChatModel.
func NewLoggingChatModel(next webretriever.ChatModel, logger *slog.Logger) *LoggingChatModel {
	return &LoggingChatModel{next: next, logger: logger}
}

// Name returns the wrapped model's name.
func (m *LoggingChatModel) Name() string {
	return m.next.Name()
}

// Complete delegates to the wrapped model and logs the call.
func (m *LoggingChatModel) Complete(ctx context.Context, req webretriever.CompletionRequest) (text string, err error) {
	defer func(begin time.Time) {
		m.logger.Info("completion",
			"model", m.next.Name(),
			"chunks", len(req.Context),
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.Complete(ctx, req)
}
