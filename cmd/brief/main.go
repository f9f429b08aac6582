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
	"github.com/fwojciec/brief"
	"github.com/fwojciec/brief/content"
	"github.com/fwojciec/brief/gemini"
	"github.com/fwojciec/brief/goquery"
	"github.com/fwojciec/brief/htmltomarkdown"
	briefhttp "github.com/fwojciec/brief/http"
	"github.com/fwojciec/brief/pipeline"
	"github.com/fwojciec/brief/readability"
	"github.com/fwojciec/brief/rod"
	briefslog "github.com/fwojciec/brief/slog"
	"github.com/fwojciec/brief/sqlite"
	"github.com/fwojciec/brief/trafilatura"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

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
	// Path of the JSON configuration file. Set before calling Run().
	ConfigPath string

	// SQLite database used by the settings and summary services.
	DB *sqlite.DB

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: filepath.Join(configDir(), "config.json"),
	}
}

// Close gracefully stops the program, releasing resources in reverse
// order of acquisition.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

func (m *Main) onClose(fn func() error) {
	m.closers = append(m.closers, fn)
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
		kong.Name("brief"),
		kong.Description("Send the active browser tab's text to an AI chat page, or summarize it with Gemini."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
		kong.Configuration(kong.JSON, m.ConfigPath),
		kong.Vars{
			"default_db": filepath.Join(configDir(), "brief.db"),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'brief --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	logger, closeLog, err := newLogger(stderr, cli.LogLevel, cli.LogFile)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	m.onClose(closeLog)
	deps.Logger = logger

	if err := os.MkdirAll(filepath.Dir(cli.DB), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set BRIEF_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	m.onClose(m.DB.Close)

	settings := brief.SettingsService(sqlite.NewSettingsService(m.DB))
	if cli.APIKey != "" {
		settings = &envKeySettings{next: settings, key: cli.APIKey}
	}
	deps.Settings = briefslog.NewLoggingSettingsService(settings, logger)
	deps.Summaries = briefslog.NewLoggingSummaryService(sqlite.NewSummaryService(m.DB), logger)

	tuning := cli.Tuning.Apply(brief.DefaultTuning())
	command := strings.Fields(kongCtx.Command())[0]

	switch command {
	case "send", "summarize":
		if err := m.requireCDP(deps, cli, command); err != nil {
			return err
		}
		if err := m.wireBrowser(deps, cli, tuning); err != nil {
			return err
		}
	case "serve":
		if err := m.wireBrowser(deps, cli, tuning); err != nil {
			return err
		}
	case "extract":
		if cli.Extract.URL == "" {
			if err := m.requireCDP(deps, cli, command); err != nil {
				return err
			}
			if err := m.wireBrowser(deps, cli, tuning); err != nil {
				return err
			}
		} else if err := m.wireSnapshots(deps, cli, tuning); err != nil {
			return err
		}
		if cli.Extract.Tokens {
			counter, err := gemini.NewTokenCounter(cli.Model)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			deps.Tokens = counter
		}
	}

	return kongCtx.Run(deps)
}

// requireCDP rejects one-shot commands that read the active tab without a
// running Chrome to attach to. A Chrome launched for a single command only
// has a blank tab and is killed on exit.
func (m *Main) requireCDP(deps *Dependencies, cli *CLI, command string) error {
	if cli.CDPURL != "" {
		return nil
	}
	fmt.Fprintln(deps.Stderr, cdpHint)
	return brief.Errorf(brief.EINVALID, "%s reads the active tab and needs --cdp-url", command)
}

const cdpHint = "Hint: Start Chrome with --remote-debugging-port=9222 and set BRIEF_CDP_URL=http://127.0.0.1:9222"

// wireBrowser connects to Chrome and builds the page host and pipelines.
func (m *Main) wireBrowser(deps *Dependencies, cli *CLI, tuning brief.Tuning) error {
	opts := []rod.BrowserOption{rod.WithHeadless(cli.Headless)}
	if cli.CDPURL != "" {
		opts = append(opts, rod.WithControlURL(cli.CDPURL))
	}
	b, err := rod.NewBrowser(opts...)
	if err != nil {
		fmt.Fprintln(deps.Stderr, cdpHint)
		return fmt.Errorf("failed to connect to browser: %w", err)
	}
	m.onClose(b.Close)
	browser := rod.NewLoggingBrowser(b, deps.Logger)

	host := content.NewHost(browser, tuning, content.WithLogger(deps.Logger))
	m.onClose(host.Close)
	pages := briefslog.NewLoggingPageHost(host, deps.Logger)

	coordinator := &pipeline.Coordinator{
		Browser:  browser,
		Pages:    pages,
		Settings: deps.Settings,
		Tuning:   tuning,
		Logger:   deps.Logger,
	}
	m.onClose(func() error {
		coordinator.Wait()
		return nil
	})

	deps.Browser = browser
	deps.Pages = pages
	deps.Delivery = coordinator
	deps.Summary = &pipeline.SummaryFlow{
		Browser:  browser,
		Pages:    pages,
		Settings: deps.Settings,
		Summarizer: briefslog.NewLoggingSummarizer(
			gemini.NewSummarizer(gemini.WithModel(cli.Model)),
			deps.Logger,
		),
		Summaries: deps.Summaries,
		Logger:    deps.Logger,
	}
	return nil
}

// wireSnapshots builds the static snapshot path used by extract --url.
func (m *Main) wireSnapshots(deps *Dependencies, cli *CLI, tuning brief.Tuning) error {
	var fetcher brief.Fetcher
	if cli.Extract.Render {
		f, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		fetcher = briefhttp.NewFetcher()
	}
	fetcher = briefslog.NewLoggingFetcher(fetcher, deps.Logger)
	m.onClose(fetcher.Close)

	snapshots := &goquery.Snapshotter{Fetcher: fetcher}
	if cli.Extract.Readable {
		switch cli.Extract.Engine {
		case "readability":
			snapshots.Readable = readability.NewExtractor()
		default:
			snapshots.Readable = trafilatura.NewExtractor()
		}
	}
	deps.Snapshots = snapshots
	if cli.Extract.Markdown {
		deps.Markdown = htmltomarkdown.NewConverter()
	}
	deps.Extractor = &content.Extractor{
		Tuning:      tuning,
		Transcripts: content.NewTranscripts(tuning, content.NewTranscriptSession()),
	}
	return nil
}

// newLogger writes text logs to stderr and, when file is set, to a
// rotating log file.
func newLogger(stderr io.Writer, level, file string) (*slog.Logger, func() error, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, err
	}

	w := stderr
	closeLog := func() error { return nil }
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, nil, err
		}
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     14,
			Compress:   true,
		}
		w = io.MultiWriter(stderr, rotating)
		closeLog = rotating.Close
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), closeLog, nil
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".brief"
	}
	return filepath.Join(home, ".brief")
}
