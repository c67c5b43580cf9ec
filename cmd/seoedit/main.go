package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/seoedit"
	"github.com/fwojciec/seoedit/analyze"
	"github.com/fwojciec/seoedit/anthropic"
	"github.com/fwojciec/seoedit/gemini"
	"github.com/fwojciec/seoedit/goquery"
	"github.com/fwojciec/seoedit/htmltomarkdown"
	seoedithttp "github.com/fwojciec/seoedit/http"
	"github.com/fwojciec/seoedit/lingua"
	"github.com/fwojciec/seoedit/memory"
	"github.com/fwojciec/seoedit/readability"
	"github.com/fwojciec/seoedit/rod"
	seoslog "github.com/fwojciec/seoedit/slog"
	"github.com/fwojciec/seoedit/suggest"
	"github.com/fwojciec/seoedit/trafilatura"
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
	// ConfigPaths are YAML files read for flag defaults. Missing files are
	// skipped. Set before calling Run().
	ConfigPaths []string

	// Services for end-to-end testing. When set they replace the ones
	// built from flags.
	Fetcher  seoedit.Fetcher
	Sitemaps seoedit.SitemapService
	Model    seoedit.Model
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: defaultConfigPaths(),
	}
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
		kong.Name("seoedit"),
		kong.Description("Scrape pages, score their SEO signals and ask a model for improvements"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(LoadYAMLConfig, m.ConfigPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'seoedit --help' to see available commands")
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

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher, err := m.fetcher(cli, stderr)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	logged := seoslog.NewLoggingFetcher(fetcher, deps.Logger)
	deps.Analyzer = newAnalyzer(cli, logged, deps.Logger)
	deps.Sitemaps = m.Sitemaps
	if deps.Sitemaps == nil {
		sitemaps := seoedithttp.NewSitemapService(nil)
		sitemaps.Timeout = cli.Timeout
		deps.Sitemaps = sitemaps
	}

	command := strings.Fields(kongCtx.Command())[0]
	if command == "serve" || command == "suggest" {
		model, err := m.model(ctx, cli, stderr)
		if err != nil {
			return err
		}
		model = seoslog.NewLoggingModel(model, deps.Logger)

		deps.Requesters = make(map[seoedit.Facet]seoedit.Requester, len(seoedit.Facets))
		for f, r := range suggest.NewRequesters(model) {
			deps.Requesters[f] = seoslog.NewLoggingRequester(r, deps.Logger)
		}
		deps.Completer = suggest.NewCompleter(model)
	}
	if command == "serve" {
		deps.Workspaces = memory.NewWorkspaceService(cli.Serve.MaxWorkspaces)
	}

	return kongCtx.Run(deps)
}

// fetcher returns the injected fetcher or builds one from flags.
// The caller closes it.
func (m *Main) fetcher(cli *CLI, stderr io.Writer) (seoedit.Fetcher, error) {
	if m.Fetcher != nil {
		return nopCloseFetcher{m.Fetcher}, nil
	}

	if cli.Browser {
		opts := []rod.Option{rod.WithFetchTimeout(cli.Timeout)}
		if cli.UserAgent != "" {
			opts = append(opts, rod.WithUserAgent(cli.UserAgent))
		}
		f, err := rod.NewFetcher(opts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}

	opts := []seoedithttp.Option{seoedithttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		opts = append(opts, seoedithttp.WithUserAgent(cli.UserAgent))
	}
	return seoedithttp.NewFetcher(opts...), nil
}

// nopCloseFetcher leaves closing an injected fetcher to its owner.
type nopCloseFetcher struct {
	seoedit.Fetcher
}

func (nopCloseFetcher) Close() error { return nil }

// newAnalyzer wires the extraction pipeline: goquery for the DOM pass,
// readability with a trafilatura fallback for the article, html-to-markdown
// for the content and lingua for the language.
func newAnalyzer(cli *CLI, fetcher seoedit.Fetcher, logger *slog.Logger) *analyze.Analyzer {
	return &analyze.Analyzer{
		Fetcher:     fetcher,
		Signals:     goquery.NewSignalExtractor(),
		Extractor:   seoslog.NewLoggingExtractor(readability.NewExtractor(), "readability", logger),
		Fallback:    seoslog.NewLoggingExtractor(trafilatura.NewExtractor(), "trafilatura", logger),
		Converter:   htmltomarkdown.NewConverter(),
		Language:    lingua.NewDetector(),
		RateLimiter: analyze.NewDomainLimiter(cli.RPS),
		Logger:      logger,
	}
}

// model returns the injected model or connects to the configured provider.
func (m *Main) model(ctx context.Context, cli *CLI, stderr io.Writer) (seoedit.Model, error) {
	if m.Model != nil {
		return m.Model, nil
	}

	switch cli.Provider {
	case "anthropic":
		if cli.AnthropicAPIKey == "" {
			fmt.Fprintln(stderr, "Hint: Get an API key at https://console.anthropic.com/settings/keys")
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		name := cli.Model
		if name == "" {
			name = anthropic.DefaultModel
		}
		return anthropic.NewModel(cli.AnthropicAPIKey, name), nil

	default:
		if cli.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "Hint: Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		name := cli.Model
		if name == "" {
			name = gemini.DefaultModel
		}
		return gemini.NewModel(client, name), nil
	}
}

// defaultConfigPaths lists SEOEDIT_CONFIG, when set, and
// ~/.config/seoedit/config.yaml.
func defaultConfigPaths() []string {
	var paths []string
	if path := os.Getenv("SEOEDIT_CONFIG"); path != "" {
		paths = append(paths, path)
	}
	return append(paths, "~/.config/seoedit/config.yaml")
}
