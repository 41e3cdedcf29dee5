package main

import (
	"fmt"

	"github.com/fwojciec/webretriever"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	resp, err := deps.Predictor.Predict(deps.Ctx, webretriever.PredictRequest{
		DataSource: c.DataSource,
		Prompt:     c.Prompt,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webretriever.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, resp.Body.Message)
	return nil
}
