package main

import (
	"fmt"

	"github.com/fwojciec/webretriever"
	wrgin "github.com/fwojciec/webretriever/gin"
)

// Run executes the serve command. It blocks until the context is done.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := &wrgin.Server{
		Addr:      c.Addr,
		Predictor: deps.Predictor,
		Logger:    deps.Logger,
	}

	fmt.Fprintf(deps.Stdout, "Serving predictions on %s\n", c.Addr)
	if err := srv.ListenAndServe(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webretriever.ErrorMessage(err))
		return err
	}
	return nil
}
