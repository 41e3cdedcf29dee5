// Package tiktoken counts tokens with OpenAI BPE encodings.
package tiktoken

import (
	"context"
	"fmt"

	"github.com/fwojciec/webretriever"
	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the encoding used by the OpenAI chat and embedding models.
const DefaultEncoding = "cl100k_base"

var _ webretriever.TokenCounter = (*Counter)(nil)

// Counter counts tokens using a tiktoken encoding.
type Counter struct {
	enc *tiktoken.Tiktoken
}

// NewCounter loads the named encoding. The BPE ranks are downloaded on first
// use and cached by the library.
func NewCounter(encoding string) (*Counter, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("loading encoding %s: %w", encoding, err)
	}
	return &Counter{enc: enc}, nil
}

// CountTokens counts the number of tokens in the given text. Special tokens
// are encoded as ordinary text.
func (c *Counter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return c.Len(text), nil
}

// Len returns the token count of text. It has the shape of a splitter
// length function.
func (c *Counter) Len(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.EncodeOrdinary(text))
}
