package langchaingo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/webretriever"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// DefaultMaxTokens bounds the length of a model answer.
const DefaultMaxTokens = 400

// DefaultSystemPrompt is sent as the system message of every request.
const DefaultSystemPrompt = "Write a response that appropriately completes the request. " +
	"Be clear and concise. Format your response as bullet points whenever possible."

// Compile-time interface verification.
var _ webretriever.ChatModel = (*ChatModel)(nil)

// ModelConfig configures an OpenAI-compatible chat model.
type ModelConfig struct {
	// Name labels the model's answers.
	Name string

	// Model is the model identifier sent to the endpoint.
	Model string

	// BaseURL is the OpenAI-compatible API root, e.g. https://host/v1.
	BaseURL string

	Token        string
	SystemPrompt string
	MaxTokens    int

	// Stream requests a streamed completion. The streamed text is
	// accumulated and returned as a whole.
	Stream bool
}

// ChatModel answers questions with a langchaingo model using a
// stuff-documents prompt.
type ChatModel struct {
	name         string
	llm          llms.Model
	systemPrompt string
	maxTokens    int
	stream       bool
}

// NewChatModel wraps llm. Empty settings in cfg take defaults; cfg.Model,
// cfg.BaseURL and cfg.Token are ignored.
func NewChatModel(cfg ModelConfig, llm llms.Model) *ChatModel {
	m := &ChatModel{
		name:         cfg.Name,
		llm:          llm,
		systemPrompt: cfg.SystemPrompt,
		maxTokens:    cfg.MaxTokens,
		stream:       cfg.Stream,
	}
	if m.systemPrompt == "" {
		m.systemPrompt = DefaultSystemPrompt
	}
	if m.maxTokens <= 0 {
		m.maxTokens = DefaultMaxTokens
	}
	if m.name == "" {
		m.name = cfg.Model
	}
	return m
}

// NewOpenAIChatModel builds a ChatModel for an OpenAI-compatible endpoint.
func NewOpenAIChatModel(cfg ModelConfig) (*ChatModel, error) {
	if cfg.Model == "" {
		return nil, webretriever.Errorf(webretriever.EINVALID, "model required")
	}
	if cfg.Token == "" {
		return nil, webretriever.Errorf(webretriever.EINVALID, "token required for model %s", cfg.Model)
	}

	opts := []openai.Option{
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.Token),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("init model %s: %w", cfg.Model, err)
	}

	return NewChatModel(cfg, llm), nil
}

// Name identifies the model in answers.
func (m *ChatModel) Name() string {
	return m.name
}

// Complete sends the system prompt, the prior conversation and the question
// with its context, and returns the first choice.
func (m *ChatModel) Complete(ctx context.Context, req webretriever.CompletionRequest) (string, error) {
	if strings.TrimSpace(req.Question) == "" {
		return "", webretriever.Errorf(webretriever.EINVALID, "question required")
	}

	messages := BuildMessages(m.systemPrompt, req)

	opts := []llms.CallOption{llms.WithMaxTokens(m.maxTokens)}
	var streamed strings.Builder
	if m.stream {
		opts = append(opts, llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			streamed.Write(chunk)
			return nil
		}))
	}

	resp, err := m.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", webretriever.Errorf(webretriever.EUNAVAILABLE, "%s did not answer in time", m.name)
		}
		return "", fmt.Errorf("%s: %w", m.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", webretriever.Errorf(webretriever.EINTERNAL, "%s returned no choices", m.name)
	}

	text := resp.Choices[0].Content
	if text == "" && streamed.Len() > 0 {
		text = streamed.String()
	}
	return strings.TrimSpace(text), nil
}

// BuildMessages renders a completion request as chat messages.
func BuildMessages(systemPrompt string, req webretriever.CompletionRequest) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(req.History)+2)
	if systemPrompt != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	}
	for _, h := range req.History {
		role := llms.ChatMessageTypeHuman
		if h.Role == webretriever.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, h.Content))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, BuildPrompt(req)))
	return messages
}

// BuildPrompt renders the question and its context with the stuff-documents
// question answering template.
func BuildPrompt(req webretriever.CompletionRequest) string {
	var sb strings.Builder
	sb.WriteString("Use the following pieces of context to answer the question at the end. ")
	sb.WriteString("If you don't know the answer, just say that you don't know, don't try to make up an answer.\n\n")
	sb.WriteString(webretriever.FormatContext(req.Context))
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(req.Question)
	sb.WriteString("\nHelpful Answer:")
	return sb.String()
}
