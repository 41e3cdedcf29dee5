package webretriever

import (
	"context"
	"time"
)

// Role identifies the author of a chat message.
type Role string

// Chat message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a prior conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the input of a single model call.
type CompletionRequest struct {
	Question string
	Context  []*Chunk
	History  []Message
}

// ChatModel is a hosted language model that answers a question from
// retrieved context.
type ChatModel interface {
	// Name identifies the model in answers and logs.
	Name() string

	// Complete returns the model's answer. The context controls the deadline
	// of the remote call.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Answer is the outcome of asking one model.
type Answer struct {
	Model    string        `json:"model"`
	Text     string        `json:"text,omitempty"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// Asker provides natural language question answering over a collection.
type Asker interface {
	// Ask retrieves context from the collection and asks every configured
	// model. A model failure is reported in its Answer and does not fail
	// the call. Returns EINVALID for an empty question.
	Ask(ctx context.Context, collectionID, question string, history []Message) ([]Answer, error)
}
