package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/brief"
)

// Delivery runs the send pipeline.
type Delivery interface {
	Run(ctx context.Context, req brief.OpenAIRequest) (*brief.PipelineRun, error)
	Dispatch(ctx context.Context, req brief.OpenAIRequest)
}

// SummaryRunner runs the summarize pipeline.
type SummaryRunner interface {
	Summarize(ctx context.Context, kind brief.SummaryKind) (*brief.Summary, error)
}

// TextExtractor reads the text of a document.
type TextExtractor interface {
	ExtractText(ctx context.Context, doc brief.Document) string
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Settings  brief.SettingsService
	Summaries brief.SummaryService
	Browser   brief.Browser
	Pages     brief.PageHost
	Delivery  Delivery
	Summary   SummaryRunner
	Snapshots brief.Snapshotter
	Extractor TextExtractor
	Markdown  brief.Converter
	Tokens    brief.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB       string `help:"SQLite database path" env:"BRIEF_DB" default:"${default_db}"`
	CDPURL   string `name:"cdp-url" help:"DevTools address of a running Chrome; required except by serve, which launches one if empty" env:"BRIEF_CDP_URL"`
	Headless bool   `help:"Launch Chrome without a window (serve without --cdp-url)"`
	APIKey   string `name:"api-key" help:"Gemini API key used when none is stored" env:"GEMINI_API_KEY"`
	Model    string `help:"Gemini model" default:"gemini-2.5-flash"`
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"info" enum:"debug,info,warn,error"`
	LogFile  string `help:"Also write logs to this rotating file" env:"BRIEF_LOG_FILE" type:"path"`

	Tuning TuningFlags `embed:"" prefix:"tuning-" group:"Tuning"`

	Send      SendCmd      `cmd:"" help:"Send the active tab's text to an AI chat page"`
	Summarize SummarizeCmd `cmd:"" help:"Summarize the active tab with Gemini"`
	Extract   ExtractCmd   `cmd:"" help:"Print the text brief would extract"`
	Key       KeyCmd       `cmd:"" help:"Manage the Gemini API key"`
	Prompts   PromptsCmd   `cmd:"" help:"Manage custom prompts"`
	Last      LastCmd      `cmd:"" help:"Print the last generated summary"`
	Serve     ServeCmd     `cmd:"" help:"Serve the local trigger API"`
}

// TuningFlags override pipeline timings. Unset flags keep the defaults;
// an explicit zero is applied.
type TuningFlags struct {
	VideoSourceDelay  *time.Duration `help:"Wait before reading a video tab"`
	PageSourceDelay   *time.Duration `help:"Wait before reading any other tab"`
	DestinationSettle *time.Duration `help:"Wait after injecting into the chat tab"`
	VideoLoadTimeout  *time.Duration `help:"Longest wait for a video page to load"`
	VideoLoadInterval *time.Duration `help:"Video load check interval"`
	PanelResetSettle  *time.Duration `help:"Wait after closing open transcript panels"`
	PanelOpenDelay    *time.Duration `help:"Wait before opening the transcript panel"`
	PanelOpenAttempts *int           `help:"Transcript panel open attempts"`
	PanelClickSettle  *time.Duration `help:"Wait after clicking a transcript toggle"`
	PanelRetryDelay   *time.Duration `help:"Wait between transcript panel attempts"`
	TranscriptSettle  *time.Duration `help:"Wait for transcript segments to render"`
	FallbackDelay     *time.Duration `help:"Wait before reading the whole transcript panel"`
	MinContentLength  *int           `help:"Minimum length of extracted text"`
	InputSettle       *time.Duration `help:"Wait before looking for the chat input"`
	InputClearDelay   *time.Duration `help:"Wait after clearing the chat input"`
	DeliveryCooldown  *time.Duration `help:"Minimum spacing of deliveries to one tab"`
	NavigationPoll    *time.Duration `help:"How often a page checks for navigation"`
}

// Apply returns t with the set flags applied.
func (f TuningFlags) Apply(t brief.Tuning) brief.Tuning {
	override(&t.VideoSourceDelay, f.VideoSourceDelay)
	override(&t.PageSourceDelay, f.PageSourceDelay)
	override(&t.DestinationSettle, f.DestinationSettle)
	override(&t.VideoLoadTimeout, f.VideoLoadTimeout)
	override(&t.VideoLoadInterval, f.VideoLoadInterval)
	override(&t.PanelResetSettle, f.PanelResetSettle)
	override(&t.PanelOpenDelay, f.PanelOpenDelay)
	override(&t.PanelOpenAttempts, f.PanelOpenAttempts)
	override(&t.PanelClickSettle, f.PanelClickSettle)
	override(&t.PanelRetryDelay, f.PanelRetryDelay)
	override(&t.TranscriptSettle, f.TranscriptSettle)
	override(&t.FallbackDelay, f.FallbackDelay)
	override(&t.MinContentLength, f.MinContentLength)
	override(&t.InputSettle, f.InputSettle)
	override(&t.InputClearDelay, f.InputClearDelay)
	override(&t.DeliveryCooldown, f.DeliveryCooldown)
	override(&t.NavigationPoll, f.NavigationPoll)
	return t
}

func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// SendCmd is the "send" subcommand.
type SendCmd struct {
	Type string `short:"t" default:"short" enum:"short,detailed" help:"Summary type (short, detailed)"`
	AI   string `name:"ai" short:"a" default:"chatgpt" help:"Destination chat (chatgpt, claude)"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	Type string `short:"t" default:"short" enum:"short,detailed" help:"Summary type (short, detailed)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL      string `help:"Extract from a fetched snapshot of this URL instead of the active tab"`
	Readable bool   `help:"Reduce the snapshot to its main content first (with --url)"`
	Engine   string `name:"readable-engine" default:"trafilatura" enum:"trafilatura,readability" help:"Main-content extractor used by --readable"`
	Render   bool   `help:"Render the snapshot in headless Chrome (with --url)"`
	Markdown bool   `help:"Print the snapshot as Markdown instead of plain text (with --url)"`
	Tokens   bool   `help:"Also print the token count of the text"`
}

// KeyCmd is the "key" command group.
type KeyCmd struct {
	Set KeySetCmd `cmd:"" help:"Store the Gemini API key"`
}

// KeySetCmd is the "key set" subcommand.
type KeySetCmd struct {
	Key string `arg:"" help:"Gemini API key"`
}

// PromptsCmd is the "prompts" command group.
type PromptsCmd struct {
	Set   PromptsSetCmd   `cmd:"" help:"Set custom prompts"`
	Reset PromptsResetCmd `cmd:"" help:"Restore the default prompts"`
	Show  PromptsShowCmd  `cmd:"" help:"Show the current prompts"`
}

// PromptsSetCmd is the "prompts set" subcommand.
type PromptsSetCmd struct {
	Short    *string `help:"Prompt used for short summaries; empty restores the default"`
	Detailed *string `help:"Prompt used for detailed summaries; empty restores the default"`
}

// PromptsResetCmd is the "prompts reset" subcommand.
type PromptsResetCmd struct{}

// PromptsShowCmd is the "prompts show" subcommand.
type PromptsShowCmd struct{}

// LastCmd is the "last" subcommand.
type LastCmd struct {
	CopySafe bool `name:"copy-safe" help:"Fail instead of printing a placeholder text"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:"127.0.0.1:8787" help:"Listen address"`
}
