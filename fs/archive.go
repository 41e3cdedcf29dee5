package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/webretriever"
)

// Ensure Archive implements webretriever.DocumentArchive at compile time.
var _ webretriever.DocumentArchive = (*Archive)(nil)

// Archive writes documents into baseDir/name.tmp and swaps that directory
// into baseDir/name on Commit.
type Archive struct {
	baseDir string
	name    string
}

// NewArchive creates a new Archive.
func NewArchive(baseDir, name string) *Archive {
	return &Archive{baseDir: baseDir, name: name}
}

// Dir returns the directory holding the committed snapshot.
func (a *Archive) Dir() string {
	return filepath.Join(a.baseDir, a.name)
}

func (a *Archive) tempDir() string {
	return filepath.Join(a.baseDir, a.name+".tmp")
}

// Save writes doc under the path derived from its source URL.
func (a *Archive) Save(ctx context.Context, doc webretriever.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.SourceURL == "" {
		return webretriever.Errorf(webretriever.EINVALID, "document source URL required")
	}

	relPath, err := URLToPath(doc.SourceURL)
	if err != nil {
		return err
	}
	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(a.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the previous snapshot. Committing without any saved
// documents leaves the previous snapshot in place.
func (a *Archive) Commit() error {
	if _, err := os.Stat(a.tempDir()); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(a.Dir()); err != nil {
		return err
	}
	return os.Rename(a.tempDir(), a.Dir())
}

// Abort removes the documents saved since the last Commit.
func (a *Archive) Abort() error {
	return os.RemoveAll(a.tempDir())
}
