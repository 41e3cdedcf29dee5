// Package fs stores and loads documentation files on the local filesystem.
package fs

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/fwojciec/webretriever"
	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---\n"

// frontmatter is the YAML header written above archived documents.
type frontmatter struct {
	Source string `yaml:"source"`
	Title  string `yaml:"title,omitempty"`
}

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", webretriever.Errorf(webretriever.EINVALID, "invalid URL %q", rawURL)
	}

	path := strings.TrimPrefix(u.Path, "/")
	if strings.Contains(path, "..") {
		return "", webretriever.Errorf(webretriever.EINVALID, "unsafe URL path %q", u.Path)
	}

	switch {
	case path == "":
		return "index.md", nil
	case strings.HasSuffix(path, "/"):
		return path + "index.md", nil
	default:
		return path + ".md", nil
	}
}

// FormatDocument renders doc as Markdown with a YAML frontmatter header.
func FormatDocument(doc webretriever.Document) (string, error) {
	header, err := yaml.Marshal(frontmatter{Source: doc.SourceURL, Title: doc.Title})
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString(frontmatterDelim)
	b.Write(header)
	b.WriteString(frontmatterDelim)
	b.WriteString("\n")
	b.WriteString(doc.Content)
	return b.String(), nil
}

// ParseDocument is the inverse of FormatDocument. Input without a
// frontmatter header becomes the content of a document with no source.
func ParseDocument(data []byte) (webretriever.Document, error) {
	if !bytes.HasPrefix(data, []byte(frontmatterDelim)) {
		return webretriever.Document{Content: string(data)}, nil
	}

	rest := data[len(frontmatterDelim):]
	header, body, ok := bytes.Cut(rest, []byte("\n"+frontmatterDelim))
	if !ok {
		return webretriever.Document{}, webretriever.Errorf(webretriever.EINVALID, "unterminated frontmatter")
	}

	var fm frontmatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return webretriever.Document{}, webretriever.Errorf(webretriever.EINVALID, "invalid frontmatter: %v", err)
	}

	return webretriever.Document{
		Content:   strings.TrimPrefix(string(body), "\n"),
		SourceURL: fm.Source,
		Title:     fm.Title,
	}, nil
}

// ReadDocument loads a document file written by Archive, or any plain text
// file.
func ReadDocument(path string) (webretriever.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return webretriever.Document{}, webretriever.Errorf(webretriever.ENOTFOUND, "file not found: %s", path)
		}
		return webretriever.Document{}, err
	}
	return ParseDocument(data)
}
