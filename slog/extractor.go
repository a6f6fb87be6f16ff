package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/elephantlog"
)

var (
	_ elephantlog.RecordExtractor = (*LoggingRecordExtractor)(nil)
	_ elephantlog.FieldExtractor  = (*LoggingFieldExtractor)(nil)
)

// LoggingRecordExtractor wraps a RecordExtractor with logging.
type LoggingRecordExtractor struct {
	next   elephantlog.RecordExtractor
	logger *slog.Logger
}

// NewLoggingRecordExtractor creates a new LoggingRecordExtractor.
func NewLoggingRecordExtractor(next elephantlog.RecordExtractor, logger *slog.Logger) *LoggingRecordExtractor {
	return &LoggingRecordExtractor{next: next, logger: logger}
}

// Extract logs the outcome kind of each article.
func (e *LoggingRecordExtractor) Extract(ctx context.Context, article *elephantlog.Article) (outcome *elephantlog.Outcome, err error) {
	defer func(begin time.Time) {
		var kind elephantlog.OutcomeKind
		var cause error
		if outcome != nil {
			kind = outcome.Kind
			cause = outcome.Err
		}
		if err != nil {
			cause = err
		}
		e.logger.Info("extract",
			"url", article.URL,
			"kind", kind,
			"duration", time.Since(begin),
			"err", cause,
		)
	}(time.Now())
	return e.next.Extract(ctx, article)
}

// LoggingFieldExtractor wraps a FieldExtractor with logging.
type LoggingFieldExtractor struct {
	next   elephantlog.FieldExtractor
	logger *slog.Logger
}

// NewLoggingFieldExtractor creates a new LoggingFieldExtractor.
func NewLoggingFieldExtractor(next elephantlog.FieldExtractor, logger *slog.Logger) *LoggingFieldExtractor {
	return &LoggingFieldExtractor{next: next, logger: logger}
}

// ExtractFields logs each model call.
func (e *LoggingFieldExtractor) ExtractFields(ctx context.Context, article *elephantlog.Article) (raw *elephantlog.RawRecord, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		e.logger.Log(ctx, level, "model call",
			"url", article.URL,
			"bytes", len(article.Text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractFields(ctx, article)
}
