package main

import (
	"fmt"

	"github.com/fwojciec/webretriever"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return webretriever.Errorf(webretriever.EINVALID, "use --force to confirm deletion")
	}

	col, err := deps.Collections.FindCollectionByName(deps.Ctx, c.Name)
	if webretriever.ErrorCode(err) == webretriever.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: collection %q not found. Use 'webretriever list' to see available collections.\n", c.Name)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webretriever.ErrorMessage(err))
		return err
	}

	if err := deps.Collections.DeleteCollection(deps.Ctx, col.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webretriever.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted collection %q\n", col.Name)
	return nil
}
