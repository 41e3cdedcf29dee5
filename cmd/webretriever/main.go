package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
	"github.com/fwojciec/webretriever"
	"github.com/fwojciec/webretriever/fs"
	"github.com/fwojciec/webretriever/gemini"
	"github.com/fwojciec/webretriever/goquery"
	"github.com/fwojciec/webretriever/htmltomarkdown"
	wrhttp "github.com/fwojciec/webretriever/http"
	"github.com/fwojciec/webretriever/ingest"
	"github.com/fwojciec/webretriever/langchaingo"
	"github.com/fwojciec/webretriever/rag"
	"github.com/fwojciec/webretriever/readability"
	"github.com/fwojciec/webretriever/rod"
	wrslog "github.com/fwojciec/webretriever/slog"
	"github.com/fwojciec/webretriever/sqlite"
	"github.com/fwojciec/webretriever/tiktoken"
	"github.com/fwojciec/webretriever/trafilatura"
	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config overrides loading the configuration from files and the
	// environment. Set before calling Run().
	Config *Config

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	m.closers = nil
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webretriever"),
		kong.Description("Answer questions about documentation sites with several language models."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webretriever --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := kongCtx.Selected().Name

	cfg := m.Config
	if cfg == nil {
		path := cli.Config
		if path == "" {
			path = os.Getenv(EnvConfigPath)
		}
		if cfg, err = LoadConfig(path); err != nil {
			fmt.Fprintf(stderr, "Hint: Set %s or --config to a readable YAML file\n", EnvConfigPath)
			return err
		}
	}
	deps.Sources = cfg.Sources
	deps.Logger = newLogger(stderr, cli.Verbose)

	// phrases and sources work without storage or credentials.
	if command == "phrases" || command == "sources" {
		return kongCtx.Run(deps)
	}

	if command == "ask" || command == "ingest" || command == "serve" {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set %s and %s, or put them in a .env file\n", EnvOpenAIKey, EnvOctoAIKey)
			return err
		}
	}

	var archive webretriever.DocumentArchive
	if command == "ingest" && cli.Ingest.ArchiveDir != "" {
		ds, err := webretriever.SelectDataSource(cli.Ingest.DataSource, cfg.Sources)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", webretriever.ErrorMessage(err))
			return err
		}
		archive = fs.NewArchive(cli.Ingest.ArchiveDir, ds.Collection)
	}

	if cfg.DBPath != ":memory:" {
		_ = os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	}
	m.DB = sqlite.NewDB(cfg.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", EnvDBPath)
		return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
	}
	defer m.Close()

	collections := sqlite.NewCollectionService(m.DB)
	chunks := sqlite.NewChunkService(m.DB)
	deps.Collections = collections
	deps.Chunks = chunks

	if command == "ask" || command == "ingest" || command == "serve" {
		ingester, err := m.newIngester(cfg, deps.Logger, collections, chunks)
		if err != nil {
			if cfg.Fetcher == FetcherRod {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or set fetcher: http in the config")
			}
			return err
		}
		if command == "ingest" {
			if cli.Ingest.Concurrency > 0 {
				ingester.Concurrency = cli.Ingest.Concurrency
			}
			ingester.Archive = archive
		}
		deps.Ingester = ingester

		if command != "ingest" {
			asker, err := m.newAsker(ctx, cfg, deps.Logger, ingester.Embedder)
			if err != nil {
				return err
			}
			deps.Predictor = &rag.Service{
				Sources:  cfg.Sources,
				Ingester: ingester,
				Asker:    asker,
			}
		}
	}

	if command == "serve" {
		gin.SetMode(gin.ReleaseMode)
	}

	return kongCtx.Run(deps)
}

// newIngester wires the ingestion pipeline: URL discovery, fetching,
// transformation, chunking, boilerplate stripping and embedding.
func (m *Main) newIngester(cfg *Config, logger *slog.Logger, collections webretriever.CollectionService, chunks webretriever.ChunkService) (*ingest.Ingester, error) {
	counter, err := tiktoken.NewCounter(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to create token counter: %w", err)
	}

	embedder, err := langchaingo.NewOpenAIEmbedder(langchaingo.EmbedderConfig{
		Token:     cfg.OpenAIToken,
		Model:     cfg.EmbeddingModel,
		CacheSize: langchaingo.DefaultCacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start fetcher: %w", err)
	}
	m.closers = append(m.closers, fetcher)

	transformer, err := newTransformer(cfg)
	if err != nil {
		return nil, err
	}

	splitter := langchaingo.NewSplitter(counter.Len)
	splitter.ChunkSize = cfg.ChunkSize
	splitter.ChunkOverlap = cfg.ChunkOverlap

	stripper := webretriever.Stripper{PhraseLength: cfg.PhraseLength}
	if cfg.DetectAllDocuments {
		stripper.Mode = webretriever.DetectAllDocuments
	}

	sitemaps := wrslog.NewLoggingSitemapService(wrhttp.NewSitemapService(nil), logger)
	urls := &fs.URLSource{Dir: cfg.DataDir, Sitemaps: sitemaps}

	return &ingest.Ingester{
		URLs:        wrslog.NewLoggingURLSource(urls, logger),
		Fetcher:     wrslog.NewLoggingFetcher(fetcher, logger),
		Transformer: transformer,
		Splitter:    splitter,
		Stripper:    stripper,
		Embedder:    wrslog.NewLoggingEmbedder(embedder, logger),
		Collections: collections,
		Chunks:      chunks,
		RateLimiter: ingest.NewDomainLimiter(cfg.RequestsPerSecond),
		MinChunks:   cfg.MinChunks,
		Logger:      logger,
	}, nil
}

// newAsker wires retrieval and the configured models.
func (m *Main) newAsker(ctx context.Context, cfg *Config, logger *slog.Logger, embedder webretriever.Embedder) (*rag.Asker, error) {
	counter, err := tiktoken.NewCounter(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to create token counter: %w", err)
	}

	var geminiClient *genai.Client
	models := make([]webretriever.ChatModel, 0, len(cfg.Models))
	for _, mc := range cfg.Models {
		var model webretriever.ChatModel
		switch mc.Provider {
		case ProviderGemini:
			if geminiClient == nil {
				geminiClient, err = genai.NewClient(ctx, &genai.ClientConfig{
					APIKey:  cfg.GeminiAPIKey,
					Backend: genai.BackendGeminiAPI,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
				}
			}
			model = gemini.NewChatModel(geminiClient, gemini.Config{
				Name:         mc.Name,
				Model:        mc.Model,
				SystemPrompt: mc.SystemPrompt,
				MaxTokens:    mc.MaxTokens,
			})
		default:
			model, err = langchaingo.NewOpenAIChatModel(langchaingo.ModelConfig{
				Name:         mc.Name,
				Model:        mc.Model,
				BaseURL:      mc.URL,
				Token:        cfg.OctoAIToken,
				SystemPrompt: mc.SystemPrompt,
				MaxTokens:    mc.MaxTokens,
				Stream:       mc.Stream,
			})
			if err != nil {
				return nil, err
			}
		}

		model = wrslog.NewLoggingChatModel(model, logger)
		if mc.Timeout > 0 {
			model = rag.WithTimeout(model, mc.Timeout)
		}
		models = append(models, model)
	}

	search := sqlite.NewSearchService(m.DB, embedder)

	return &rag.Asker{
		Search:           wrslog.NewLoggingSearchService(search, logger),
		Models:           models,
		Counter:          counter,
		TopK:             cfg.TopK,
		MaxContextTokens: cfg.MaxContextTokens,
		Timeout:          cfg.Timeout,
	}, nil
}

func newFetcher(cfg *Config) (webretriever.Fetcher, error) {
	switch cfg.Fetcher {
	case FetcherHTTP:
		return wrhttp.NewFetcher(), nil
	case "", FetcherRod:
		return rod.NewFetcher()
	default:
		return nil, webretriever.Errorf(webretriever.EINVALID, "unknown fetcher %q", cfg.Fetcher)
	}
}

func newTransformer(cfg *Config) (webretriever.Transformer, error) {
	switch cfg.Transform {
	case "", TransformTags:
		return goquery.NewTagTransformer(cfg.Tags...), nil
	case TransformTrafilatura:
		return &ingest.ExtractTransformer{
			Extractor: trafilatura.NewExtractor(),
			Converter: htmltomarkdown.NewConverter(),
		}, nil
	case TransformReadability:
		return &ingest.ExtractTransformer{
			Extractor: readability.NewExtractor(),
			Converter: htmltomarkdown.NewConverter(),
		}, nil
	default:
		return nil, webretriever.Errorf(webretriever.EINVALID, "unknown transform %q", cfg.Transform)
	}
}

// newLogger returns a slog logger writing through a charmbracelet/log
// handler.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return slog.New(handler)
}
