package mock

import (
	"context"

	"github.com/fwojciec/elephantlog"
)

var _ elephantlog.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of elephantlog.RecordWriter.
type RecordWriter struct {
	WriteRecordFn func(ctx context.Context, rec *elephantlog.IncidentRecord) error
	CloseFn       func() error
}

func (w *RecordWriter) WriteRecord(ctx context.Context, rec *elephantlog.IncidentRecord) error {
	return w.WriteRecordFn(ctx, rec)
}

func (w *RecordWriter) Close() error {
	return w.CloseFn()
}
