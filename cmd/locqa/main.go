package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/build"
	"github.com/fwojciec/locqa/fs"
	"github.com/fwojciec/locqa/gemini"
	"github.com/fwojciec/locqa/ollama"
	"github.com/fwojciec/locqa/qa"
	locslog "github.com/fwojciec/locqa/slog"
	"github.com/fwojciec/locqa/sqlite"
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
	// Getenv reads configuration from the environment. Set before calling Run().
	Getenv func(string) string

	// Model, if set, replaces the configured provider.
	Model locqa.Model

	// Seed returns seeds for example selection.
	Seed func() uint64
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
		Seed:   rand.Uint64,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Seed:   m.Seed,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("locqa"),
		kong.Description("Answer questions from a precomputed passage store."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'locqa --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := LoadConfig(cli.Config, m.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", locqa.ErrorMessage(err))
		return err
	}
	if cmd == "build" && cli.Build.Dataset != "" {
		cfg.Dataset = cli.Build.Dataset
	}
	deps.Config = cfg

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	if err := os.MkdirAll(filepath.Dir(cfg.DB), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	deps.Records = locslog.NewLoggingRecordStore(sqlite.NewRecordStore(cfg.DB), logger)

	if cmd == "info" {
		return kongCtx.Run(deps)
	}

	model := m.Model
	if model == nil {
		model, err = newModel(ctx, cfg, m.Getenv, stderr)
		if err != nil {
			return err
		}
	}
	model = locslog.NewLoggingModel(model, logger)

	if cfg.Dataset != "" {
		deps.Source = fs.NewDatasetReader(cfg.Dataset)
	}
	builder := &build.Builder{
		Embedder:    model,
		Limiter:     build.NewLimiter(cfg.Build.Rate),
		Concurrency: cfg.Build.Concurrency,
		Dedupe:      cfg.Build.Dedupe,
		RetryDelays: build.DefaultRetryDelays(),
		Progress:    progressPrinter(stderr),
		Logger:      logger,
	}
	if cfg.Model.Provider == ProviderGemini {
		tokenCounter, err := gemini.NewTokenCounter("")
		if err != nil {
			logger.Warn("token counting disabled", "err", err)
		} else {
			builder.TokenCounter = tokenCounter
		}
	}
	deps.Builder = builder

	if cmd == "ask" || cmd == "example" || cmd == "serve" {
		store, err := qa.OpenStore(ctx, deps.Records, deps.Source, deps.Builder)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", locqa.ErrorMessage(err))
			return err
		}
		svc := qa.NewService(store, model, cfg.Metric)
		deps.Retriever = locslog.NewLoggingRetriever(svc, logger)
	}

	return kongCtx.Run(deps)
}

// newModel connects to the configured model provider.
func newModel(ctx context.Context, cfg *Config, getenv func(string) string, stderr io.Writer) (locqa.Model, error) {
	switch cfg.Model.Provider {
	case ProviderOllama:
		model, err := ollama.NewModel(ollama.Config{
			ServerURL:      cfg.Model.OllamaURL,
			EmbeddingModel: cfg.Model.Embedding,
			AnswerModel:    cfg.Model.Answer,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: check that Ollama is running and model.ollama_url is correct")
			return nil, fmt.Errorf("failed to connect to Ollama: %w", err)
		}
		return model, nil
	default:
		apiKey := getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewModel(client, cfg.Model.Embedding, cfg.Model.Answer), nil
	}
}

// progressPrinter reports build progress on w.
func progressPrinter(w io.Writer) build.ProgressFunc {
	return func(event build.ProgressEvent) {
		switch event.Type {
		case build.ProgressStarted:
			fmt.Fprintf(w, "  Embedding %d passages", event.Total)
			if event.Skipped > 0 {
				fmt.Fprintf(w, " (%d duplicates skipped)", event.Skipped)
			}
			fmt.Fprintln(w)
		case build.ProgressRetried:
			fmt.Fprintf(w, "  retry passage %d (attempt %d): %v\n", event.Passage, event.Attempt, event.Err)
		case build.ProgressFinished:
			fmt.Fprintf(w, "  Embedded %d passages (%s)\n", event.Completed, build.FormatTokens(event.Tokens))
		}
	}
}
