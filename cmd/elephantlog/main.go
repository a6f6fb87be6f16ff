package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/gemini"
	"github.com/fwojciec/elephantlog/goquery"
	"github.com/fwojciec/elephantlog/htmltomarkdown"
	elhttp "github.com/fwojciec/elephantlog/http"
	elopenai "github.com/fwojciec/elephantlog/openai"
	"github.com/fwojciec/elephantlog/pipeline"
	"github.com/fwojciec/elephantlog/readability"
	"github.com/fwojciec/elephantlog/robotstxt"
	"github.com/fwojciec/elephantlog/rod"
	"github.com/fwojciec/elephantlog/sqlite"
	"github.com/fwojciec/elephantlog/trafilatura"
)

func main() {
	// Ctrl-C stops the run after the current URL; rows already written stay.
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
	// Default database path. Set before calling Run().
	DBPath string

	// Stdin supplies URLs typed interactively.
	Stdin io.Reader

	// Getenv reads configuration from the environment.
	Getenv func(string) string

	// Now returns the time used for output file names.
	Now func() time.Time

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService    elephantlog.RunService
	RecordService elephantlog.RecordService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(os.Getenv),
		Stdin:  os.Stdin,
		Getenv: os.Getenv,
		Now:    time.Now,
	}
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
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("elephantlog"),
		kong.Description("Extract elephant incident records from news articles."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"db": m.DBPath},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'elephantlog --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = NewLogger(stderr, cli.LogLevel)

	settings, err := LoadSettings(cli.Config, m.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", elephantlog.ErrorMessage(err))
		return err
	}

	cmd := strings.Fields(kongCtx.Command())[0]
	switch cmd {
	case "run":
		cfg, err := cli.Run.Config(settings.Config)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", elephantlog.ErrorMessage(err))
			return err
		}
		deps.Config = cfg

		if err := m.wireModels(ctx, deps, settings, cli.Run.Flags); err != nil {
			return err
		}

		fetcher, err := newFetcher(cfg, cli.Run.Browser)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()
		deps.Fetcher = fetcher

		if !cli.Run.IgnoreRobots {
			deps.Robots = robotstxt.NewChecker(cfg.UserAgent)
		}
		deps.Extractor = pipeline.NewChainExtractor(
			goquery.NewSiteExtractor(nil),
			trafilatura.NewExtractor(),
			readability.NewExtractor(),
		)
		deps.Converter = htmltomarkdown.NewConverter()

		if err := m.openDB(deps, cli.Run.DB, stderr); err != nil {
			return err
		}
		defer m.Close()

	case "sample":
		cfg, err := cli.Sample.Flags.Apply(settings.Config)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", elephantlog.ErrorMessage(err))
			return err
		}
		deps.Config = cfg

		if err := m.wireModels(ctx, deps, settings, cli.Sample.Flags); err != nil {
			return err
		}

	case "stats":
		if err := m.openDB(deps, cli.Stats.DB, stderr); err != nil {
			return err
		}
		defer m.Close()
	}

	return kongCtx.Run(deps)
}

// openDB opens the archive at path and wires its services into deps.
func (m *Main) openDB(deps *Dependencies, path string, stderr io.Writer) error {
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ELEPHANTLOG_DB or --db to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}

	m.RunService = sqlite.NewRunService(m.DB)
	m.RecordService = sqlite.NewRecordService(m.DB)
	deps.Runs = m.RunService
	deps.Records = m.RecordService
	return nil
}

// wireModels connects the AI collaborator the selected mode needs. A
// missing API key fails here, before any URL is processed.
func (m *Main) wireModels(ctx context.Context, deps *Dependencies, settings *Settings, flags ExtractFlags) error {
	switch flags.modelName() {
	case ModeGemini:
		client, err := gemini.NewClient(ctx, settings.GeminiAPIKey)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Get an API key at https://aistudio.google.com/apikey")
			return err
		}
		deps.Models.Gemini = gemini.NewFieldExtractor(client, deps.Config.GeminiModel, deps.Config)
	case ModeOpenAI:
		extractor, err := elopenai.NewFieldExtractor(settings.OpenAIAPIKey, settings.OpenAIBaseURL, deps.Config.OpenAIModel, deps.Config)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Set OPENAI_API_KEY, and OPENAI_BASE_URL for compatible providers")
			return err
		}
		deps.Models.OpenAI = extractor
	}
	return nil
}

// newFetcher returns the plain HTTP fetcher, or the headless browser when
// browser is set.
func newFetcher(cfg elephantlog.Config, browser bool) (elephantlog.Fetcher, error) {
	if browser {
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(cfg.FetchTimeout),
			rod.WithUserAgent(cfg.UserAgent),
		)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return elhttp.NewFetcher(
		elhttp.WithTimeout(cfg.FetchTimeout),
		elhttp.WithUserAgent(cfg.UserAgent),
	), nil
}

func defaultDBPath(getenv func(string) string) string {
	if path := getenv(dbPathEnv); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "elephantlog.db"
	}
	return filepath.Join(home, ".elephantlog", "elephantlog.db")
}
