package main

import (
	"fmt"

	"github.com/fwojciec/webretriever"
	"github.com/fwojciec/webretriever/fs"
)

// Run executes the phrases command.
func (c *PhrasesCmd) Run(deps *Dependencies) error {
	docs := make([]webretriever.Document, 0, len(c.Files))
	for _, path := range c.Files {
		doc, err := fs.ReadDocument(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webretriever.ErrorMessage(err))
			return err
		}
		docs = append(docs, doc)
	}

	find := webretriever.FindCommonPhrases
	if c.AllDocuments {
		find = webretriever.FindCommonPhrasesAll
	}
	phrases, err := find(docs, c.Length)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webretriever.ErrorMessage(err))
		return err
	}

	for _, p := range phrases {
		fmt.Fprintln(deps.Stdout, p)
	}
	fmt.Fprintf(deps.Stderr, "%d common phrases in %d documents\n", len(phrases), len(docs))
	return nil
}
