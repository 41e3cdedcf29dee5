// Package gemini implements webretriever.ChatModel using Google Gemini.
package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/webretriever"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultSystemInstruction is sent when no system prompt is configured.
const DefaultSystemInstruction = "You are a helpful assistant answering questions about software documentation. " +
	"Answer based only on the context provided. If the answer is not in the context, say so."

// Ensure ChatModel implements webretriever.ChatModel at compile time.
var _ webretriever.ChatModel = (*ChatModel)(nil)

// Config configures a ChatModel.
type Config struct {
	Name         string
	Model        string
	SystemPrompt string
	MaxTokens    int
}

// ChatModel answers questions with a Gemini model.
type ChatModel struct {
	client *genai.Client
	cfg    Config
}

// NewChatModel creates a new ChatModel.
func NewChatModel(client *genai.Client, cfg Config) *ChatModel {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Model
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemInstruction
	}
	return &ChatModel{client: client, cfg: cfg}
}

// Name identifies the model in answers.
func (m *ChatModel) Name() string {
	return m.cfg.Name
}

// Complete answers the question from its context.
func (m *ChatModel) Complete(ctx context.Context, req webretriever.CompletionRequest) (string, error) {
	if strings.TrimSpace(req.Question) == "" {
		return "", webretriever.Errorf(webretriever.EINVALID, "question required")
	}
	if m.client == nil {
		return "", webretriever.Errorf(webretriever.EUNAVAILABLE, "%s: gemini client not configured", m.cfg.Name)
	}

	result, err := m.client.Models.GenerateContent(ctx, m.cfg.Model, BuildContents(req), BuildConfig(m.cfg))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", webretriever.Errorf(webretriever.EUNAVAILABLE, "%s did not answer in time", m.cfg.Name)
		}
		return "", err
	}
	if result == nil {
		return "", webretriever.Errorf(webretriever.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(cfg Config) *genai.GenerateContentConfig {
	temp := float32(0.4)
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: cfg.SystemPrompt}},
		},
		Temperature: &temp,
	}
	if cfg.MaxTokens > 0 {
		config.MaxOutputTokens = int32(cfg.MaxTokens)
	}
	return config
}

// BuildContents renders the conversation history followed by the user
// prompt.
func BuildContents(req webretriever.CompletionRequest) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, h := range req.History {
		role := genai.Role(genai.RoleUser)
		if h.Role == webretriever.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(h.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(BuildUserPrompt(req), genai.RoleUser))
	return contents
}

// BuildUserPrompt builds the user prompt containing the context and question.
func BuildUserPrompt(req webretriever.CompletionRequest) string {
	var sb strings.Builder
	sb.WriteString("<context>\n")
	for _, c := range req.Context {
		sb.WriteString("<chunk>\n")
		if c.Metadata.SourceURL != "" {
			sb.WriteString("<source>" + c.Metadata.SourceURL + "</source>\n")
		}
		sb.WriteString("<content>" + c.Content + "</content>\n")
		sb.WriteString("</chunk>\n")
	}
	sb.WriteString("</context>\n\n")
	sb.WriteString("Question: " + req.Question)
	return sb.String()
}
