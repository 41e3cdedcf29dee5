package rag

import (
	"context"
	"net/http"

	"github.com/fwojciec/webretriever"
	"github.com/fwojciec/webretriever/ingest"
)

// Ensure Service implements webretriever.Predictor at compile time.
var _ webretriever.Predictor = (*Service)(nil)

// Ingester populates the collection of a data source.
type Ingester interface {
	Ingest(ctx context.Context, ds webretriever.DataSource, opts ingest.Options, progress ingest.ProgressFunc) (*ingest.Result, error)
}

// Service answers prediction requests: it picks the data source, ingests it
// when its collection is not populated yet, and asks every model.
type Service struct {
	Sources  []webretriever.DataSource
	Ingester Ingester
	Asker    webretriever.Asker
}

// Predict implements webretriever.Predictor. Empty fields of req fall back
// to DefaultDataSource and DefaultPrompt.
func (s *Service) Predict(ctx context.Context, req webretriever.PredictRequest) (*webretriever.PredictResponse, error) {
	selector := req.DataSource
	if selector == "" {
		selector = webretriever.DefaultDataSource
	}
	prompt := req.Prompt
	if prompt == "" {
		prompt = webretriever.DefaultPrompt
	}

	ds, err := webretriever.SelectDataSource(selector, s.Sources)
	if err != nil {
		return nil, err
	}

	result, err := s.Ingester.Ingest(ctx, ds, ingest.Options{}, nil)
	if err != nil {
		return nil, err
	}

	answers, err := s.Asker.Ask(ctx, result.CollectionID, prompt, req.History)
	if err != nil {
		return nil, err
	}

	return &webretriever.PredictResponse{
		StatusCode: http.StatusOK,
		Body:       webretriever.PredictBody{Message: webretriever.FormatAnswers(answers)},
	}, nil
}
