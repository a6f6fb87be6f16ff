package pipeline

import (
	"context"
	"errors"

	"github.com/fwojciec/elephantlog"
)

var _ elephantlog.RecordWriter = (*MultiWriter)(nil)

// MultiWriter writes each record to every writer in order.
type MultiWriter struct {
	Writers []elephantlog.RecordWriter
}

// NewMultiWriter returns a MultiWriter over writers, skipping nils.
func NewMultiWriter(writers ...elephantlog.RecordWriter) *MultiWriter {
	m := &MultiWriter{}
	for _, w := range writers {
		if w != nil {
			m.Writers = append(m.Writers, w)
		}
	}
	return m
}

// WriteRecord stops at the first writer that fails.
func (m *MultiWriter) WriteRecord(ctx context.Context, rec *elephantlog.IncidentRecord) error {
	for _, w := range m.Writers {
		if err := w.WriteRecord(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every writer and joins their errors.
func (m *MultiWriter) Close() error {
	var errs []error
	for _, w := range m.Writers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
