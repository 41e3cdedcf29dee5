package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/webretriever"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadConfig.
const (
	EnvOpenAIKey  = "OPENAI_API_KEY"
	EnvOctoAIKey  = "OCTOAI_TOKEN"
	EnvGeminiKey  = "GEMINI_API_KEY"
	EnvDBPath     = "WEBRETRIEVER_DB"
	EnvConfigPath = "WEBRETRIEVER_CONFIG"
)

// Model providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Page transformers.
const (
	TransformTags        = "tags"
	TransformTrafilatura = "trafilatura"
	TransformReadability = "readability"
)

// Page fetchers.
const (
	FetcherRod  = "rod"
	FetcherHTTP = "http"
)

// Config holds the settings of a webretriever process. It is built once in
// main and passed to constructors.
type Config struct {
	DBPath  string `yaml:"db"`
	DataDir string `yaml:"data_dir"`

	// Credentials come from the environment only.
	OpenAIToken  string `yaml:"-"`
	OctoAIToken  string `yaml:"-"`
	GeminiAPIKey string `yaml:"-"`

	EmbeddingModel string `yaml:"embedding_model"`
	Encoding       string `yaml:"encoding"`

	Fetcher   string   `yaml:"fetcher"`
	Transform string   `yaml:"transform"`
	Tags      []string `yaml:"tags"`

	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`

	PhraseLength       int  `yaml:"phrase_length"`
	DetectAllDocuments bool `yaml:"detect_all_documents"`

	MinChunks         int     `yaml:"min_chunks"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	TopK             int           `yaml:"top_k"`
	MaxContextTokens int           `yaml:"max_context_tokens"`
	Timeout          time.Duration `yaml:"timeout"`

	Models  []ModelConfig             `yaml:"models"`
	Sources []webretriever.DataSource `yaml:"sources"`
}

// ModelConfig describes one hosted language model.
type ModelConfig struct {
	Name         string        `yaml:"name"`
	Provider     string        `yaml:"provider"`
	URL          string        `yaml:"url"`
	Model        string        `yaml:"model"`
	SystemPrompt string        `yaml:"system_prompt"`
	MaxTokens    int           `yaml:"max_tokens"`
	Stream       bool          `yaml:"stream"`
	Timeout      time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the configuration used when no file is given: the
// two Llama 2 chat endpoints and the OctoAI and Kubernetes data sources.
func DefaultConfig() *Config {
	return &Config{
		DBPath:            defaultDBPath(),
		DataDir:           ".",
		EmbeddingModel:    "text-embedding-ada-002",
		Encoding:          "cl100k_base",
		Fetcher:           FetcherRod,
		Transform:         TransformTags,
		Tags:              []string{"div"},
		ChunkSize:         1300,
		ChunkOverlap:      0,
		PhraseLength:      webretriever.DefaultPhraseLength,
		MinChunks:         32,
		RequestsPerSecond: 5,
		TopK:              2,
		MaxContextTokens:  2000,
		Timeout:           60 * time.Second,
		Models: []ModelConfig{
			{
				Name:      "LLAMA2-13B",
				Provider:  ProviderOpenAI,
				URL:       "https://llama-2-13b-chat-demo-kk0powt97tmb.octoai.run/v1",
				Model:     "llama-2-13b-chat",
				MaxTokens: 400,
			},
			{
				Name:      "LLAMA-2-7B",
				Provider:  ProviderOpenAI,
				URL:       "https://llama-2-7b-chat-demo-kk0powt97tmb.octoai.run/v1",
				Model:     "llama-2-7b-chat",
				MaxTokens: 400,
			},
		},
		Sources: []webretriever.DataSource{
			{
				Name:       "kubernetes",
				URLFile:    "data/k8_docs_urls_setup.json",
				Collection: "k8_docs",
				Match:      []string{"k8", "kubernetes"},
			},
			{
				Name:       "octoai",
				URLFile:    "data/octoai_docs_urls.json",
				Collection: "octoai_docs",
				Default:    true,
			},
		},
	}
}

// LoadConfig builds the configuration in layers: defaults, then a .env file
// in the working directory, then the YAML file at path (skipped when path
// is empty), then environment overrides.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		if err := cfg.ReadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// ReadFile overlays the YAML file at path onto c. Keys missing from the
// file keep their current values; lists in the file replace the defaults.
func (c *Config) ReadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return webretriever.Errorf(webretriever.ENOTFOUND, "config file %q not found", path)
	} else if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return webretriever.Errorf(webretriever.EINVALID, "parsing config %q: %v", path, err)
	}
	return nil
}

// ApplyEnv overrides credentials and the database path from getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvOpenAIKey); v != "" {
		c.OpenAIToken = v
	}
	if v := getenv(EnvOctoAIKey); v != "" {
		c.OctoAIToken = v
	}
	if v := getenv(EnvGeminiKey); v != "" {
		c.GeminiAPIKey = v
	}
	if v := getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
}

// Validate reports missing credentials and settings needed to ingest and
// answer questions.
func (c *Config) Validate() error {
	if c.OpenAIToken == "" {
		return webretriever.Errorf(webretriever.EINVALID, "%s not set", EnvOpenAIKey)
	}
	if len(c.Models) == 0 {
		return webretriever.Errorf(webretriever.EINVALID, "no models configured")
	}
	for _, m := range c.Models {
		switch m.Provider {
		case "", ProviderOpenAI:
			if c.OctoAIToken == "" {
				return webretriever.Errorf(webretriever.EINVALID, "%s not set (required by model %s)", EnvOctoAIKey, m.Name)
			}
		case ProviderGemini:
			if c.GeminiAPIKey == "" {
				return webretriever.Errorf(webretriever.EINVALID, "%s not set (required by model %s)", EnvGeminiKey, m.Name)
			}
		default:
			return webretriever.Errorf(webretriever.EINVALID, "model %s: unknown provider %q", m.Name, m.Provider)
		}
	}
	if len(c.Sources) == 0 {
		return webretriever.Errorf(webretriever.EINVALID, "no data sources configured")
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "webretriever.db"
	}
	return filepath.Join(home, ".webretriever", "webretriever.db")
}
