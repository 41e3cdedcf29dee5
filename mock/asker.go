package mock

import (
	"context"

	"github.com/fwojciec/webretriever"
)

var _ webretriever.Asker = (*Asker)(nil)

// Asker is a mock implementation of webretriever.Asker.
type Asker struct {
	AskFn func(ctx context.Context, collectionID, question string, history []webretriever.Message) ([]webretriever.Answer, error)
}

func (a *Asker) Ask(ctx context.Context, collectionID, question string, history []webretriever.Message) ([]webretriever.Answer, error) {
	return a.AskFn(ctx, collectionID, question, history)
}

var _ webretriever.ChatModel = (*ChatModel)(nil)

// ChatModel is a mock implementation of webretriever.ChatModel.
type ChatModel struct {
	NameFn     func() string
	CompleteFn func(ctx context.Context, req webretriever.CompletionRequest) (string, error)
}

func (m *ChatModel) Name() string {
	return m.NameFn()
}

func (m *ChatModel) Complete(ctx context.Context, req webretriever.CompletionRequest) (string, error) {
	return m.CompleteFn(ctx, req)
}

var _ webretriever.Predictor = (*Predictor)(nil)

// Predictor is a mock implementation of webretriever.Predictor.
type Predictor struct {
	PredictFn func(ctx context.Context, req webretriever.PredictRequest) (*webretriever.PredictResponse, error)
}

func (p *Predictor) Predict(ctx context.Context, req webretriever.PredictRequest) (*webretriever.PredictResponse, error) {
	return p.PredictFn(ctx, req)
}
