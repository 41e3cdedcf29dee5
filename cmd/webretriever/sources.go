package main

import (
	"fmt"
	"strings"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	if len(deps.Sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No data sources configured.")
		return nil
	}

	for _, src := range deps.Sources {
		origin := src.URLFile
		if src.SitemapURL != "" {
			origin = src.SitemapURL
		}
		line := fmt.Sprintf("%s  %s  %s", src.Name, src.Collection, origin)
		if len(src.Match) > 0 {
			line += "  match=" + strings.Join(src.Match, ",")
		}
		if src.Default {
			line += "  (default)"
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	return nil
}
