package main

import (
	"fmt"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/bloom"
	"github.com/fwojciec/elephantlog/fs"
	"github.com/fwojciec/elephantlog/pipeline"
	"github.com/fwojciec/elephantlog/prometheus"
	elslog "github.com/fwojciec/elephantlog/slog"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	logger := deps.logger()

	if c.Input == fs.Stdin {
		fmt.Fprintln(deps.Stderr, "Enter article URLs (one per line). Press Enter on an empty line when done:")
	}
	urls, err := fs.LoadURLs(c.Input, deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", elephantlog.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs to process.")
		return nil
	}
	for _, dup := range bloom.Duplicates(urls) {
		logger.Warn("duplicate URL in input", "url", dup)
	}

	records, err := newRecordExtractor(c.Flags, deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", elephantlog.ErrorMessage(err))
		return err
	}

	var metrics *prometheus.Metrics
	fetcher := elephantlog.Fetcher(elslog.NewLoggingFetcher(deps.Fetcher, logger))
	if c.MetricsFile != "" {
		metrics = prometheus.NewMetrics()
		fetcher = prometheus.NewCountingFetcher(fetcher, metrics)
	}

	s, err := startSession(deps, c.Flags.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", elephantlog.ErrorMessage(err))
		return err
	}

	cfg := deps.Config
	runner := &pipeline.Runner{
		Fetcher:     fetcher,
		Extractor:   deps.Extractor,
		Converter:   deps.Converter,
		Records:     records,
		Writer:      s.writer,
		RateLimiter: pipeline.NewDomainLimiter(cfg.RateLimit),
		Robots:      deps.Robots,
		RetryDelays: cfg.RetryDelays(),
		Delay:       cfg.RequestDelay,
		Logger:      logger,
	}

	fmt.Fprintf(deps.Stdout, "Processing %d URLs...\n", len(urls))
	result, runErr := runner.Run(deps.Ctx, urls, func(event pipeline.ProgressEvent) {
		if event.Type != pipeline.ProgressCompleted {
			return
		}
		if metrics != nil {
			metrics.ObserveOutcome(event.Outcome.Kind, event.Duration)
		}
		fmt.Fprintf(deps.Stdout, "  [%d/%d] %-14s %s\n", event.Completed, event.Total, event.Outcome.Kind, event.URL)
	})

	finishErr := s.finish(result.Summary)

	if metrics != nil {
		if err := metrics.WriteToTextfile(c.MetricsFile); err != nil {
			logger.Error("failed to write metrics", "path", c.MetricsFile, "err", err)
		}
	}

	printSummary(deps.Stdout, result, len(urls), s)

	if runErr != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", runErr)
		return runErr
	}
	return finishErr
}
