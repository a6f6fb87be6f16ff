// Package pipeline runs a list of article URLs through fetching,
// extraction, and persistence, one URL at a time.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/elephantlog"
)

// Runner processes article URLs sequentially. Output order matches input
// order and every URL yields exactly one outcome.
type Runner struct {
	Fetcher   elephantlog.Fetcher
	Extractor elephantlog.Extractor
	Converter elephantlog.Converter
	Records   elephantlog.RecordExtractor
	Writer    elephantlog.RecordWriter

	// RateLimiter and Robots are optional.
	RateLimiter elephantlog.DomainLimiter
	Robots      elephantlog.RobotsChecker

	// RetryDelays holds the wait before each fetch retry.
	// Nil means DefaultRetryDelays.
	RetryDelays []time.Duration

	// Delay is the pause between consecutive URLs.
	Delay time.Duration

	// Logger receives run-level events. Nil disables logging.
	Logger *slog.Logger
}

// Result holds the outcomes of a run.
type Result struct {
	// Outcomes has one entry per processed URL, in input order.
	Outcomes []*elephantlog.Outcome
	Summary  *elephantlog.Summary

	// Interrupted is set when the context was canceled before every URL
	// was processed. Outcomes and written records up to that point are kept.
	Interrupted bool
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Outcome   *elephantlog.Outcome
	Duration  time.Duration
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Run processes urls in order. Blank URLs are skipped. Per-article
// failures become outcomes; only a writer failure aborts the run with an
// error. Cancellation stops the run after the current URL and returns the
// partial result.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	var items []string
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			items = append(items, u)
		}
	}
	return r.loop(ctx, len(items), r.Delay, func(i int) (string, *elephantlog.Outcome) {
		return items[i], r.Process(ctx, items[i])
	}, progress)
}

// RunArticles extracts already-fetched articles, skipping the fetch step
// and the inter-request delay.
func (r *Runner) RunArticles(ctx context.Context, articles []*elephantlog.Article, progress ProgressFunc) (*Result, error) {
	return r.loop(ctx, len(articles), 0, func(i int) (string, *elephantlog.Outcome) {
		return articles[i].URL, r.extract(ctx, articles[i])
	}, progress)
}

func (r *Runner) loop(ctx context.Context, total int, delay time.Duration, process func(i int) (string, *elephantlog.Outcome), progress ProgressFunc) (*Result, error) {
	result := &Result{Summary: elephantlog.NewSummary()}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	for i := 0; i < total; i++ {
		if i > 0 {
			if err := sleep(ctx, delay); err != nil {
				result.Interrupted = true
				break
			}
		}
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}

		start := time.Now()
		url, outcome := process(i)
		if outcome == nil {
			// Canceled mid-article: nothing was decided for this URL.
			result.Interrupted = true
			break
		}

		if outcome.Kind == elephantlog.Accepted {
			// An assembled record is persisted even if the run was canceled
			// while it was being extracted.
			if err := r.Writer.WriteRecord(context.WithoutCancel(ctx), outcome.Record); err != nil {
				return result, fmt.Errorf("write record %s: %w", url, err)
			}
		} else {
			r.logf(slog.LevelWarn, "article not accepted", "url", url, "kind", outcome.Kind, "err", outcome.Err)
		}

		result.Outcomes = append(result.Outcomes, outcome)
		result.Summary.Add(outcome)

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: i + 1,
				Total:     total,
				URL:       url,
				Outcome:   outcome,
				Duration:  time.Since(start),
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: len(result.Outcomes),
			Total:     total,
		})
	}
	return result, nil
}

// Process fetches and extracts a single URL. It returns nil only when ctx
// is canceled before an outcome is decided.
func (r *Runner) Process(ctx context.Context, url string) (outcome *elephantlog.Outcome) {
	defer func() {
		if v := recover(); v != nil {
			outcome = elephantlog.NewRejected(elephantlog.ParseFailed, url,
				elephantlog.Errorf(elephantlog.EINTERNAL, "panic processing %s: %v", url, v))
		}
	}()

	if r.Robots != nil {
		allowed, err := r.Robots.Allowed(ctx, url)
		if err != nil {
			r.logf(slog.LevelDebug, "robots check failed, allowing", "url", url, "err", err)
		} else if !allowed {
			return elephantlog.NewRejected(elephantlog.FetchFailed, url,
				elephantlog.Errorf(elephantlog.EFETCH, "disallowed by robots.txt: %s", url))
		}
	}

	if r.RateLimiter != nil {
		if err := r.RateLimiter.Wait(ctx, elephantlog.Host(url)); err != nil {
			return nil
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	onRetry := func(url string, attempt int, err error) {
		r.logf(slog.LevelInfo, "retrying fetch", "url", url, "attempt", attempt, "err", err)
	}
	html, err := FetchWithRetry(ctx, url, r.Fetcher.Fetch, onRetry, delays)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return elephantlog.NewRejected(elephantlog.FetchFailed, url, err)
	}

	article, err := r.article(url, html)
	if err != nil {
		return elephantlog.NewRejected(elephantlog.ParseFailed, url, err)
	}
	return r.extract(ctx, article)
}

// article turns fetched HTML into an Article.
func (r *Runner) article(url, html string) (*elephantlog.Article, error) {
	extracted, err := r.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}
	text, err := r.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, elephantlog.Errorf(elephantlog.EPARSE, "convert %s: %v", url, err)
	}
	return &elephantlog.Article{
		URL:       url,
		Title:     strings.TrimSpace(extracted.Title),
		Text:      strings.TrimSpace(text),
		Published: strings.TrimSpace(extracted.Published),
		Source:    extracted.SiteName,
	}, nil
}

// extract runs the record strategy, downgrading errors and panics to
// ParseFailed.
func (r *Runner) extract(ctx context.Context, article *elephantlog.Article) (outcome *elephantlog.Outcome) {
	defer func() {
		if v := recover(); v != nil {
			outcome = elephantlog.NewRejected(elephantlog.ParseFailed, article.URL,
				elephantlog.Errorf(elephantlog.EINTERNAL, "panic extracting %s: %v", article.URL, v))
		}
	}()

	outcome, err := r.Records.Extract(ctx, article)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return elephantlog.NewRejected(elephantlog.ParseFailed, article.URL, err)
	}
	if outcome == nil {
		return elephantlog.NewRejected(elephantlog.ParseFailed, article.URL,
			elephantlog.Errorf(elephantlog.EINTERNAL, "no outcome for %s", article.URL))
	}
	if outcome.URL == "" {
		outcome.URL = article.URL
	}
	return outcome
}

func (r *Runner) logf(level slog.Level, msg string, args ...any) {
	if r.Logger != nil {
		r.Logger.Log(context.Background(), level, msg, args...)
	}
}
