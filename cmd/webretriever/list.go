package main

import (
	"fmt"

	"github.com/fwojciec/webretriever"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	collections, err := deps.Collections.FindCollections(deps.Ctx, webretriever.CollectionFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webretriever.ErrorMessage(err))
		return err
	}

	if len(collections) == 0 {
		fmt.Fprintln(deps.Stdout, "No collections found. Use 'webretriever ingest' to create one.")
		return nil
	}

	for _, col := range collections {
		n, err := deps.Chunks.CountChunks(deps.Ctx, col.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webretriever.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d chunks\n", col.ID, col.Name, n)
	}

	return nil
}
