package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/elephantlog"
)

// Extraction modes.
const (
	ModeRules   = "rules"
	ModeGemini  = "gemini"
	ModeOpenAI  = "openai"
	ModeCompare = "compare"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Now    func() time.Time

	Config elephantlog.Config
	Models Models

	Fetcher   elephantlog.Fetcher
	Robots    elephantlog.RobotsChecker
	Extractor elephantlog.Extractor
	Converter elephantlog.Converter

	// Runs and Records are nil when no archive is open.
	Runs    elephantlog.RunService
	Records elephantlog.RecordService
}

// Models holds the AI collaborators wired for the selected mode.
type Models struct {
	Gemini elephantlog.FieldExtractor
	OpenAI elephantlog.FieldExtractor
}

func (d *Dependencies) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `type:"path" help:"YAML config file (or ELEPHANTLOG_CONFIG)"`
	LogLevel string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level for stderr"`

	Run    RunCmd    `cmd:"" help:"Fetch and extract incidents from a list of article URLs"`
	Sample SampleCmd `cmd:"" help:"Extract incidents from the built-in sample articles"`
	Stats  StatsCmd  `cmd:"" help:"Show archived runs and the state distribution"`
}

// ExtractFlags are shared by the commands that extract records.
type ExtractFlags struct {
	Mode         string `short:"m" default:"rules" enum:"rules,gemini,openai,compare" help:"Extraction strategy (rules, gemini, openai, compare)"`
	CompareWith  string `name:"compare-with" default:"gemini" enum:"gemini,openai" help:"AI strategy checked against rules in compare mode"`
	StartYear    int    `name:"start-year" help:"Earliest accepted year (default 2000)"`
	EndYear      int    `name:"end-year" help:"Latest accepted year (default 2025)"`
	NoDateFilter bool   `name:"no-date-filter" help:"Accept records whatever their date"`
	Output       string `short:"o" default:"output" help:"Directory for the CSV file"`
}

// Apply overlays the flags on cfg and validates the result.
func (f ExtractFlags) Apply(cfg elephantlog.Config) (elephantlog.Config, error) {
	if f.StartYear != 0 {
		cfg.StartYear = f.StartYear
	}
	if f.EndYear != 0 {
		cfg.EndYear = f.EndYear
	}
	if f.NoDateFilter {
		cfg.FilterByDate = false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// modelName returns the AI collaborator the mode needs, or "".
func (f ExtractFlags) modelName() string {
	switch f.Mode {
	case ModeGemini, ModeOpenAI:
		return f.Mode
	case ModeCompare:
		return f.CompareWith
	}
	return ""
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Input        string       `arg:"" optional:"" default:"-" help:"File of URLs, one per line, or - to type them"`
	Flags        ExtractFlags `embed:""`
	Browser      bool         `help:"Fetch pages with a headless browser"`
	DB           string       `default:"${db}" help:"SQLite archive of runs and records"`
	MetricsFile  string       `name:"metrics-file" help:"Write Prometheus metrics to this file"`
	Delay        float64      `default:"-1" help:"Seconds between requests (negative keeps the configured delay)"`
	IgnoreRobots bool         `name:"ignore-robots" help:"Fetch pages disallowed by robots.txt"`
}

// Config overlays the run flags on cfg and validates the result.
func (c *RunCmd) Config(cfg elephantlog.Config) (elephantlog.Config, error) {
	if c.Delay >= 0 {
		cfg.RequestDelay = time.Duration(c.Delay * float64(time.Second))
	}
	return c.Flags.Apply(cfg)
}

// SampleCmd is the "sample" subcommand.
type SampleCmd struct {
	Flags ExtractFlags `embed:""`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	DB    string `default:"${db}" help:"SQLite archive of runs and records"`
	RunID string `name:"run" help:"Only count records from this run"`
	Limit int    `default:"10" help:"Number of recent runs to list"`
}
