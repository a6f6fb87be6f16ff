package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/elephantlog"
)

var _ elephantlog.RecordWriter = (*LoggingRecordWriter)(nil)

// LoggingRecordWriter wraps a RecordWriter with logging.
type LoggingRecordWriter struct {
	next   elephantlog.RecordWriter
	logger *slog.Logger
}

// NewLoggingRecordWriter creates a new LoggingRecordWriter.
func NewLoggingRecordWriter(next elephantlog.RecordWriter, logger *slog.Logger) *LoggingRecordWriter {
	return &LoggingRecordWriter{next: next, logger: logger}
}

// WriteRecord logs each written record. Failures are logged at error level
// because they abort the run.
func (w *LoggingRecordWriter) WriteRecord(ctx context.Context, rec *elephantlog.IncidentRecord) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
		}
		w.logger.Log(ctx, level, "write record",
			"url", rec.URL,
			"state", rec.Location.State,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteRecord(ctx, rec)
}

// Close delegates to the wrapped writer.
func (w *LoggingRecordWriter) Close() error {
	return w.next.Close()
}
