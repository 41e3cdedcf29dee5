package gin_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/webretriever"
	wrgin "github.com/fwojciec/webretriever/gin"
	"github.com/fwojciec/webretriever/mock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newServer(predict func(ctx context.Context, req webretriever.PredictRequest) (*webretriever.PredictResponse, error)) *wrgin.Server {
	return &wrgin.Server{Predictor: &mock.Predictor{PredictFn: predict}}
}

func TestServer_Predict(t *testing.T) {
	t.Parallel()

	t.Run("returns the response envelope", func(t *testing.T) {
		t.Parallel()

		var got webretriever.PredictRequest
		s := newServer(func(_ context.Context, req webretriever.PredictRequest) (*webretriever.PredictResponse, error) {
			got = req
			return &webretriever.PredictResponse{
				StatusCode: http.StatusOK,
				Body:       webretriever.PredictBody{Message: "\nLLAMA2-13B\nanswer\n\nResponse (1.0 sec)"},
			}, nil
		})

		body := `{"data_source": "k8_docs", "prompt": "What is a pod?"}`
		req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "k8_docs", got.DataSource)
		assert.Equal(t, "What is a pod?", got.Prompt)
		assert.JSONEq(t, `{"statusCode":200,"body":{"message":"\nLLAMA2-13B\nanswer\n\nResponse (1.0 sec)"}}`, w.Body.String())
	})

	t.Run("accepts an empty body", func(t *testing.T) {
		t.Parallel()

		called := false
		s := newServer(func(_ context.Context, req webretriever.PredictRequest) (*webretriever.PredictResponse, error) {
			called = true
			assert.Empty(t, req.DataSource)
			assert.Empty(t, req.Prompt)
			return &webretriever.PredictResponse{StatusCode: http.StatusOK}, nil
		})

		req := httptest.NewRequest(http.MethodPost, "/predict", http.NoBody)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		s := newServer(func(context.Context, webretriever.PredictRequest) (*webretriever.PredictResponse, error) {
			t.Fatal("predictor should not be called")
			return nil, nil
		})

		req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"prompt":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp struct {
			StatusCode int `json:"statusCode"`
			Body       struct {
				Error string `json:"error"`
			} `json:"body"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, resp.Body.Error, "invalid request body")
	})

	t.Run("maps domain errors to status codes", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			err  error
			code int
		}{
			{webretriever.Errorf(webretriever.EINVALID, "bad"), http.StatusBadRequest},
			{webretriever.Errorf(webretriever.ENOTFOUND, "missing"), http.StatusNotFound},
			{webretriever.Errorf(webretriever.EUNAVAILABLE, "down"), http.StatusServiceUnavailable},
			{context.DeadlineExceeded, http.StatusInternalServerError},
		}
		for _, tt := range tests {
			s := newServer(func(context.Context, webretriever.PredictRequest) (*webretriever.PredictResponse, error) {
				return nil, tt.err
			})

			req := httptest.NewRequest(http.MethodPost, "/predict", http.NoBody)
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code, "error %v", tt.err)
		}
	})

	t.Run("hides internal error details", func(t *testing.T) {
		t.Parallel()

		s := newServer(func(context.Context, webretriever.PredictRequest) (*webretriever.PredictResponse, error) {
			return nil, assert.AnError
		})

		req := httptest.NewRequest(http.MethodPost, "/predict", http.NoBody)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"statusCode":500,"body":{"error":"Internal error."}}`, w.Body.String())
	})
}

func TestServer_Healthz(t *testing.T) {
	t.Parallel()

	s := newServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- newServer(nil).Serve(ctx, ln)
		}()

		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	})
}
