package webretriever

import (
	"fmt"
	"strings"
)

// FormatAnswers combines model answers into a single message. Each answer is
// introduced by its model name and followed by the response time. Failed
// answers show the error message in place of the text.
func FormatAnswers(answers []Answer) string {
	parts := make([]string, 0, len(answers))
	for _, a := range answers {
		var sb strings.Builder
		fmt.Fprintf(&sb, "\n%s\n", a.Model)
		if a.Err != nil {
			fmt.Fprintf(&sb, "error: %s", answerError(a.Err))
		} else {
			sb.WriteString(a.Text)
		}
		fmt.Fprintf(&sb, "\n\nResponse (%.1f sec)", a.Duration.Seconds())
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n")
}

func answerError(err error) string {
	if ErrorCode(err) == EINTERNAL {
		return err.Error()
	}
	return ErrorMessage(err)
}

// FormatContext joins retrieved chunks into the context block given to a model.
// Chunks are separated by blank lines.
func FormatContext(chunks []*Chunk) string {
	if len(chunks) == 0 {
		return ""
	}

	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Content)
	}

	return strings.Join(parts, "\n\n")
}
