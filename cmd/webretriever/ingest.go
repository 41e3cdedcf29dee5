package main

import (
	"fmt"

	"github.com/fwojciec/webretriever"
	"github.com/fwojciec/webretriever/ingest"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	ds, err := webretriever.SelectDataSource(c.DataSource, deps.Sources)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webretriever.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Ingesting %q into collection %q\n", ds.Name, ds.Collection)

	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", ingest.TruncateURL(event.URL, 80), event.Error)
		}
	}

	result, err := deps.Ingester.Ingest(deps.Ctx, ds, ingest.Options{Force: c.Force}, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webretriever.ErrorMessage(err))
		return err
	}

	if result.Skipped {
		fmt.Fprintf(deps.Stdout, "  Collection already holds %d chunks. Use --force to re-ingest.\n", result.Chunks)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "  Stored %d chunks from %d pages (%s, %d common phrases removed)\n",
		result.Chunks, result.Pages, ingest.FormatBytes(result.Bytes), result.Phrases)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d pages failed\n", result.Failed)
	}
	return nil
}
