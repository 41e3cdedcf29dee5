package webretriever

import "context"

// Defaults applied to empty prediction requests.
const (
	DefaultDataSource = "octoai_docs"
	DefaultPrompt     = "What is an endpoint?"
)

// PredictRequest is the input of the invocation surface.
type PredictRequest struct {
	DataSource string    `json:"data_source"`
	Prompt     string    `json:"prompt"`
	History    []Message `json:"chat_history,omitempty"`
}

// PredictResponse is the output of the invocation surface.
type PredictResponse struct {
	StatusCode int         `json:"statusCode"`
	Body       PredictBody `json:"body"`
}

// PredictBody carries the combined answers.
type PredictBody struct {
	Message string `json:"message"`
}

// Predictor answers a prompt against the data source it selects, ingesting
// the data source first if its collection is not populated yet.
type Predictor interface {
	Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error)
}
