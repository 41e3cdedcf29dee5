// Package rag answers questions from retrieved documentation chunks by
// asking several language models at once.
package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/webretriever"
	"golang.org/x/sync/errgroup"
)

// Defaults for the zero-valued Asker fields.
const (
	DefaultTopK             = 2
	DefaultMaxContextTokens = 2000
	DefaultTimeout          = 60 * time.Second
)

// Ensure Asker implements webretriever.Asker at compile time.
var _ webretriever.Asker = (*Asker)(nil)

// Asker retrieves the chunks most similar to a question and asks every model
// in parallel. Each model runs under its own deadline and fails on its own.
type Asker struct {
	Search webretriever.SearchService
	Models []webretriever.ChatModel

	// Counter measures chunks against MaxContextTokens. A nil Counter
	// disables trimming.
	Counter webretriever.TokenCounter

	TopK             int
	MaxContextTokens int

	// Timeout bounds each model call.
	Timeout time.Duration
}

// Ask implements webretriever.Asker. Answers are returned in model order.
func (a *Asker) Ask(ctx context.Context, collectionID, question string, history []webretriever.Message) ([]webretriever.Answer, error) {
	if question == "" {
		return nil, webretriever.Errorf(webretriever.EINVALID, "question required")
	}
	if len(a.Models) == 0 {
		return nil, webretriever.Errorf(webretriever.EINVALID, "no models configured")
	}

	results, err := a.Search.Search(ctx, question, webretriever.SearchOptions{
		CollectionID: collectionID,
		Limit:        a.topK(),
	})
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	chunks := make([]*webretriever.Chunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
	}
	chunks, err = a.trim(ctx, chunks)
	if err != nil {
		return nil, err
	}

	req := webretriever.CompletionRequest{
		Question: question,
		Context:  chunks,
		History:  history,
	}

	answers := make([]webretriever.Answer, len(a.Models))
	var g errgroup.Group
	for i, model := range a.Models {
		g.Go(func() error {
			answers[i] = a.complete(ctx, model, req)
			return nil
		})
	}
	_ = g.Wait()

	return answers, nil
}

// complete asks one model under its own deadline. It returns when the
// deadline passes even if the model ignores ctx; a late reply is discarded.
func (a *Asker) complete(ctx context.Context, model webretriever.ChatModel, req webretriever.CompletionRequest) webretriever.Answer {
	timeout := a.timeout()
	if t, ok := model.(*timedModel); ok && t.timeout > 0 {
		timeout = t.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type reply struct {
		text string
		err  error
	}
	replyCh := make(chan reply, 1)

	begin := time.Now()
	go func() {
		text, err := model.Complete(ctx, req)
		replyCh <- reply{text: text, err: err}
	}()

	answer := webretriever.Answer{Model: model.Name()}
	var r reply
	select {
	case r = <-replyCh:
	case <-ctx.Done():
		r.err = ctx.Err()
	}
	answer.Duration = time.Since(begin)

	if ctx.Err() == context.DeadlineExceeded {
		answer.Err = webretriever.Errorf(webretriever.EUNAVAILABLE, "%s did not answer in time", model.Name())
		return answer
	}
	if r.err != nil {
		answer.Err = r.err
		return answer
	}
	answer.Text = r.text
	return answer
}

// trim drops chunks from the end until the rest fit in MaxContextTokens.
func (a *Asker) trim(ctx context.Context, chunks []*webretriever.Chunk) ([]*webretriever.Chunk, error) {
	if a.Counter == nil || len(chunks) == 0 {
		return chunks, nil
	}

	counts := make([]int, len(chunks))
	var total int
	for i, c := range chunks {
		n, err := a.Counter.CountTokens(ctx, c.Content)
		if err != nil {
			return nil, fmt.Errorf("counting tokens: %w", err)
		}
		counts[i] = n
		total += n
	}

	limit := a.maxContextTokens()
	n := len(chunks)
	for n > 0 && total > limit {
		n--
		total -= counts[n]
	}
	return chunks[:n], nil
}

func (a *Asker) topK() int {
	if a.TopK <= 0 {
		return DefaultTopK
	}
	return a.TopK
}

func (a *Asker) maxContextTokens() int {
	if a.MaxContextTokens <= 0 {
		return DefaultMaxContextTokens
	}
	return a.MaxContextTokens
}

func (a *Asker) timeout() time.Duration {
	if a.Timeout <= 0 {
		return DefaultTimeout
	}
	return a.Timeout
}

// WithTimeout returns model bounded by its own call timeout instead of
// Asker.Timeout. It must be the outermost wrapper of the model.
func WithTimeout(model webretriever.ChatModel, d time.Duration) webretriever.ChatModel {
	return &timedModel{ChatModel: model, timeout: d}
}

type timedModel struct {
	webretriever.ChatModel
	timeout time.Duration
}
