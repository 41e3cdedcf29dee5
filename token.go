package webretriever

import "context"

// TokenCounter measures text in model tokens.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
