package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sift"
	"github.com/fwojciec/sift/apify"
	"github.com/fwojciec/sift/config"
	"github.com/fwojciec/sift/firecrawl"
	"github.com/fwojciec/sift/goquery"
	"github.com/fwojciec/sift/html"
	"github.com/fwojciec/sift/htmltomarkdown"
	sifthttp "github.com/fwojciec/sift/http"
	"github.com/fwojciec/sift/readability"
	"github.com/fwojciec/sift/scrape"
	siftslog "github.com/fwojciec/sift/slog"
	"github.com/fwojciec/sift/sqlite"
	"github.com/fwojciec/sift/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadEnvFiles(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv reads environment overrides. Defaults to os.Getenv.
	Getenv func(string) string

	// SQLite database backing job history.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
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
		kong.Name("sift"),
		kong.Description("Extract page structure and social media results."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sift --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config, m.Getenv)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	deps.Config = cfg
	deps.Logger = newLogger(stderr, cfg.Logging.Level)

	cmd := kongCtx.Command()
	needsHistory := cmd == "serve" || strings.HasPrefix(cmd, "scrape") || strings.HasPrefix(cmd, "jobs")

	if needsHistory {
		path := cfg.Database.Path
		if path == "" {
			path = defaultDBPath()
		}
		if err := ensureDBDir(path); err != nil {
			return err
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SIFT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		defer m.Close()
		deps.Jobs = sqlite.NewJobService(m.DB)
	}

	deps.Pages = &scrape.Service{
		Fetcher:   siftslog.NewLoggingPageFetcher(newPageFetcher(cfg, deps.Logger), deps.Logger),
		Extractor: html.NewExtractor(),
		Jobs:      deps.Jobs,
		Logger:    deps.Logger,
	}
	deps.Social = newSocialService(cfg, deps.Logger)

	return kongCtx.Run(deps)
}

// newPageFetcher selects Firecrawl or a direct HTTP fetch.
func newPageFetcher(cfg *config.Config, logger *slog.Logger) sift.PageFetcher {
	if cfg.Fetch.PageFetcher == config.FetcherDirect {
		var extractor sift.Extractor = trafilatura.NewExtractor()
		if cfg.Fetch.Extractor == config.ExtractorReadability {
			extractor = readability.NewExtractor()
		}

		opts := []sifthttp.FetcherOption{sifthttp.WithTimeout(cfg.Fetch.Timeout)}
		if cfg.Fetch.UserAgent != "" {
			opts = append(opts, sifthttp.WithUserAgent(cfg.Fetch.UserAgent))
		}

		return &scrape.DirectFetcher{
			Fetcher:   siftslog.NewLoggingFetcher(sifthttp.NewFetcher(opts...), logger),
			Limiter:   scrape.NewDomainLimiter(cfg.Fetch.RateLimit, cfg.Fetch.Burst),
			Metadata:  goquery.NewMetadataReader(),
			Extractor: extractor,
			Converter: htmltomarkdown.NewConverter(),
		}
	}

	var opts []firecrawl.Option
	if cfg.Firecrawl.BaseURL != "" {
		opts = append(opts, firecrawl.WithBaseURL(cfg.Firecrawl.BaseURL))
	}
	return firecrawl.NewClient(cfg.Firecrawl.APIKey, opts...)
}

// newSocialService wires the Apify client with per-platform actor overrides.
func newSocialService(cfg *config.Config, logger *slog.Logger) *apify.Service {
	var opts []apify.Option
	if cfg.Apify.BaseURL != "" {
		opts = append(opts, apify.WithBaseURL(cfg.Apify.BaseURL))
	}
	client := apify.NewClient(cfg.Apify.Token, opts...)

	actors := apify.DefaultActors()
	for platform, actor := range cfg.Apify.Actors {
		actors[platform] = actor
	}

	return &apify.Service{
		Resolver:    apify.NewResolver(actors),
		Runner:      siftslog.NewLoggingActorRunner(client, logger),
		Datasets:    siftslog.NewLoggingDatasetReader(client, logger),
		WaitSeconds: cfg.Apify.WaitSeconds,
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sift.db"
	}
	return filepath.Join(home, ".sift", "sift.db")
}

// ensureDBDir creates the directory holding the database file.
func ensureDBDir(path string) error {
	if path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory %q: %w", dir, err)
	}
	return nil
}
