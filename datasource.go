package webretriever

import (
	"context"
	"regexp"
	"strings"
)

// DataSource describes where the pages of one documentation set come from
// and which collection stores them.
type DataSource struct {
	// Name identifies the data source in logs and CLI output.
	Name string `yaml:"name" json:"name"`

	// URLFile is a JSON file listing {"url": "..."} records.
	URLFile string `yaml:"url_file" json:"urlFile,omitempty"`

	// SitemapURL, when set, is used instead of URLFile to discover pages.
	SitemapURL string `yaml:"sitemap_url" json:"sitemapUrl,omitempty"`

	// Collection names the storage namespace for the source's chunks.
	Collection string `yaml:"collection" json:"collection"`

	// Match lists substrings of a selector that pick this source.
	Match []string `yaml:"match" json:"match,omitempty"`

	// Default marks the source used when no Match applies.
	Default bool `yaml:"default" json:"default,omitempty"`

	// Include and Exclude are regular expressions restricting the
	// discovered page URLs.
	Include []string `yaml:"include" json:"include,omitempty"`
	Exclude []string `yaml:"exclude" json:"exclude,omitempty"`
}

// URLFilter compiles the Include and Exclude patterns. It returns nil when
// the source has no patterns, and EINVALID for a malformed pattern.
func (ds DataSource) URLFilter() (*URLFilter, error) {
	if len(ds.Include) == 0 && len(ds.Exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, p := range ds.Include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "data source %q: invalid include pattern %q", ds.Name, p)
		}
		f.Include = append(f.Include, re)
	}
	for _, p := range ds.Exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "data source %q: invalid exclude pattern %q", ds.Name, p)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// SelectDataSource returns the first source with a Match substring contained
// in selector, or the default source if none matches. Matching is case-sensitive.
// Returns ENOTFOUND if nothing matches and no default is configured.
func SelectDataSource(selector string, sources []DataSource) (DataSource, error) {
	for _, src := range sources {
		for _, m := range src.Match {
			if m != "" && strings.Contains(selector, m) {
				return src, nil
			}
		}
	}
	for _, src := range sources {
		if src.Default {
			return src, nil
		}
	}
	return DataSource{}, Errorf(ENOTFOUND, "no data source matches %q", selector)
}

// URLSource lists the page URLs of a data source.
type URLSource interface {
	Discover(ctx context.Context, src DataSource) ([]string, error)
}
