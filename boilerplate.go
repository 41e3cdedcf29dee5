package webretriever

import (
	"strings"
	"unicode"
)

// DefaultPhraseLength is the number of tokens in a phrase window.
const DefaultPhraseLength = 30

// DetectionMode selects which documents phrase windows are drawn from.
type DetectionMode int

const (
	// DetectReference draws windows from the first document only. Phrases
	// shared by every document that never form a window of the first
	// document are not found.
	DetectReference DetectionMode = iota

	// DetectAllDocuments draws windows from every document in the batch.
	DetectAllDocuments
)

// FindCommonPhrases returns the distinct phrase windows of the first document
// that occur verbatim in the content of every document in the batch.
//
// Windows are phraseLength consecutive whitespace-delimited tokens joined by
// single spaces. Whitespace is unicode.IsSpace plus the separators U+001C
// through U+001F. Phrases are returned in order of first appearance in the
// first document. An empty batch, or a first document with fewer than
// phraseLength tokens, yields no phrases.
func FindCommonPhrases(docs []Document, phraseLength int) ([]string, error) {
	return findCommonPhrases(docs, phraseLength, DetectReference)
}

// FindCommonPhrasesAll is like FindCommonPhrases but draws candidate windows
// from every document, not only the first.
func FindCommonPhrasesAll(docs []Document, phraseLength int) ([]string, error) {
	return findCommonPhrases(docs, phraseLength, DetectAllDocuments)
}

func findCommonPhrases(docs []Document, phraseLength int, mode DetectionMode) ([]string, error) {
	if phraseLength < 1 {
		return nil, Errorf(EINVALID, "phrase length must be at least 1, got %d", phraseLength)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	sources := docs[:1]
	if mode == DetectAllDocuments {
		sources = docs
	}

	seen := make(map[string]struct{})
	var phrases []string
	for _, src := range sources {
		tokens := strings.FieldsFunc(src.Content, isSeparator)
		for i := 0; i+phraseLength <= len(tokens); i++ {
			phrase := strings.Join(tokens[i:i+phraseLength], " ")
			if _, ok := seen[phrase]; ok {
				continue
			}
			seen[phrase] = struct{}{}
			if containedInAll(docs, phrase) {
				phrases = append(phrases, phrase)
			}
		}
	}
	return phrases, nil
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func containedInAll(docs []Document, phrase string) bool {
	for _, doc := range docs {
		if !strings.Contains(doc.Content, phrase) {
			return false
		}
	}
	return true
}

// RemoveCommonPhrases returns a copy of docs with every occurrence of each
// phrase removed from the content. Phrases are removed one after another in
// the given order, so a removal can break a later phrase's match when the
// two overlap. The input slice is not modified.
func RemoveCommonPhrases(docs []Document, phrases []string) []Document {
	if docs == nil {
		return nil
	}
	out := make([]Document, len(docs))
	for i, doc := range docs {
		content := doc.Content
		for _, phrase := range phrases {
			if phrase == "" {
				continue
			}
			content = strings.ReplaceAll(content, phrase, "")
		}
		doc.Content = content
		out[i] = doc
	}
	return out
}

// Stripper removes boilerplate text shared by every document in a batch.
// The zero value uses DefaultPhraseLength and DetectReference.
type Stripper struct {
	PhraseLength int
	Mode         DetectionMode
}

// Strip detects the common phrases of the batch and returns the documents
// with those phrases removed, together with the phrases that were removed.
func (s Stripper) Strip(docs []Document) ([]Document, []string, error) {
	n := s.PhraseLength
	if n == 0 {
		n = DefaultPhraseLength
	}
	phrases, err := findCommonPhrases(docs, n, s.Mode)
	if err != nil {
		return nil, nil, err
	}
	return RemoveCommonPhrases(docs, phrases), phrases, nil
}
