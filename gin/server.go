// Package gin exposes the prediction service over HTTP.
package gin

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/webretriever"
	"github.com/gin-gonic/gin"
)

// DefaultAddr is the listen address used when Server.Addr is empty.
const DefaultAddr = ":8080"

// shutdownTimeout bounds how long in-flight predictions may finish after
// the server context is done.
const shutdownTimeout = 30 * time.Second

// Server serves POST /predict and GET /healthz.
type Server struct {
	Addr      string
	Predictor webretriever.Predictor
	Logger    *slog.Logger
}

// errorBody is the body of a failed prediction.
type errorBody struct {
	Error string `json:"error"`
}

// errorResponse mirrors PredictResponse for failures.
type errorResponse struct {
	StatusCode int       `json:"statusCode"`
	Body       errorBody `json:"body"`
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.logRequests())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/predict", s.handlePredict)

	return router
}

func (s *Server) handlePredict(c *gin.Context) {
	var req webretriever.PredictRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.writeError(c, webretriever.Errorf(webretriever.EINVALID, "invalid request body: %v", err))
			return
		}
	}

	resp, err := s.Predictor.Predict(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) writeError(c *gin.Context, err error) {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		s.logger().Error("prediction failed", "err", err)
	}
	c.JSON(code, errorResponse{
		StatusCode: code,
		Body:       errorBody{Error: webretriever.ErrorMessage(err)},
	})
}

// StatusCode maps an error to its HTTP status code.
func StatusCode(err error) int {
	switch webretriever.ErrorCode(err) {
	case webretriever.EINVALID:
		return http.StatusBadRequest
	case webretriever.ENOTFOUND:
		return http.StatusNotFound
	case webretriever.ECONFLICT:
		return http.StatusConflict
	case webretriever.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		s.logger().Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(begin),
		)
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := s.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger().Info("starting HTTP server", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
