package ingest

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ChunkID derives a stable chunk ID from the collection and chunk content,
// so re-ingesting unchanged text replaces chunks instead of duplicating them.
func ChunkID(collectionID, content string) string {
	d := xxhash.New()
	_, _ = d.WriteString(collectionID)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(content)
	return fmt.Sprintf("%016x", d.Sum64())
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
