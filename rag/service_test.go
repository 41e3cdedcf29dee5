package rag_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/webretriever"
	"github.com/fwojciec/webretriever/ingest"
	"github.com/fwojciec/webretriever/mock"
	"github.com/fwojciec/webretriever/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ingesterFunc adapts a function to rag.Ingester.
type ingesterFunc func(ctx context.Context, ds webretriever.DataSource, opts ingest.Options, progress ingest.ProgressFunc) (*ingest.Result, error)

func (f ingesterFunc) Ingest(ctx context.Context, ds webretriever.DataSource, opts ingest.Options, progress ingest.ProgressFunc) (*ingest.Result, error) {
	return f(ctx, ds, opts, progress)
}

var sources = []webretriever.DataSource{
	{Name: "kubernetes", Collection: "k8_docs", Match: []string{"k8", "kubernetes"}},
	{Name: "octoai", Collection: "octoai_docs", Default: true},
}

func TestService_Predict(t *testing.T) {
	t.Parallel()

	newService := func(ingested *webretriever.DataSource, asked *string) *rag.Service {
		return &rag.Service{
			Sources: sources,
			Ingester: ingesterFunc(func(_ context.Context, ds webretriever.DataSource, _ ingest.Options, _ ingest.ProgressFunc) (*ingest.Result, error) {
				*ingested = ds
				return &ingest.Result{CollectionID: "id-" + ds.Collection, Skipped: true}, nil
			}),
			Asker: &mock.Asker{
				AskFn: func(_ context.Context, collectionID, question string, _ []webretriever.Message) ([]webretriever.Answer, error) {
					*asked = collectionID + ": " + question
					return []webretriever.Answer{
						{Model: "LLAMA2-13B", Text: "An endpoint is a URL.", Duration: 1500 * time.Millisecond},
						{Model: "LLAMA-2-7B", Err: webretriever.Errorf(webretriever.EUNAVAILABLE, "LLAMA-2-7B did not answer in time"), Duration: 30 * time.Second},
					}, nil
				},
			},
		}
	}

	t.Run("uses defaults for empty request", func(t *testing.T) {
		t.Parallel()

		var ingested webretriever.DataSource
		var asked string
		s := newService(&ingested, &asked)

		resp, err := s.Predict(context.Background(), webretriever.PredictRequest{})

		require.NoError(t, err)
		assert.Equal(t, "octoai_docs", ingested.Collection)
		assert.Equal(t, "id-octoai_docs: What is an endpoint?", asked)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("selects data source by substring", func(t *testing.T) {
		t.Parallel()

		var ingested webretriever.DataSource
		var asked string
		s := newService(&ingested, &asked)

		_, err := s.Predict(context.Background(), webretriever.PredictRequest{DataSource: "k8_docs", Prompt: "What is a pod?"})

		require.NoError(t, err)
		assert.Equal(t, "k8_docs", ingested.Collection)
		assert.Equal(t, "id-k8_docs: What is a pod?", asked)
	})

	t.Run("formats every answer", func(t *testing.T) {
		t.Parallel()

		var ingested webretriever.DataSource
		var asked string
		s := newService(&ingested, &asked)

		resp, err := s.Predict(context.Background(), webretriever.PredictRequest{Prompt: "q"})

		require.NoError(t, err)
		want := "\nLLAMA2-13B\nAn endpoint is a URL.\n\nResponse (1.5 sec)\n" +
			"\nLLAMA-2-7B\nerror: LLAMA-2-7B did not answer in time\n\nResponse (30.0 sec)"
		assert.Equal(t, want, resp.Body.Message)
	})

	t.Run("returns ingestion errors", func(t *testing.T) {
		t.Parallel()

		s := &rag.Service{
			Sources: sources,
			Ingester: ingesterFunc(func(context.Context, webretriever.DataSource, ingest.Options, ingest.ProgressFunc) (*ingest.Result, error) {
				return nil, errors.New("browser crashed")
			}),
			Asker: &mock.Asker{},
		}

		_, err := s.Predict(context.Background(), webretriever.PredictRequest{})

		assert.EqualError(t, err, "browser crashed")
	})

	t.Run("returns not found without a matching source", func(t *testing.T) {
		t.Parallel()

		s := &rag.Service{
			Sources:  []webretriever.DataSource{{Name: "k8", Match: []string{"k8"}}},
			Ingester: ingesterFunc(nil),
			Asker:    &mock.Asker{},
		}

		_, err := s.Predict(context.Background(), webretriever.PredictRequest{DataSource: "octoai"})

		require.Error(t, err)
		assert.Equal(t, webretriever.ENOTFOUND, webretriever.ErrorCode(err))
	})
}
