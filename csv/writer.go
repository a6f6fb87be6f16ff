// Package csv writes accepted incident records as CSV rows.
package csv

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/fwojciec/elephantlog"
)

// Ensure Writer implements elephantlog.RecordWriter at compile time.
var _ elephantlog.RecordWriter = (*Writer)(nil)

// Writer writes one row per record under a header of elephantlog.Columns.
// Every row is flushed before WriteRecord returns. Writer is safe for
// concurrent use.
type Writer struct {
	mu     sync.Mutex
	w      *csv.Writer
	closer io.Closer
}

// NewWriter writes the header to w and returns a Writer over it.
// If w is an io.Closer, Close closes it.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := &Writer{w: csv.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		cw.closer = c
	}
	if err := cw.write(elephantlog.Columns()); err != nil {
		return nil, err
	}
	return cw, nil
}

// Create creates the file at path, including missing parent directories.
func Create(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, elephantlog.Errorf(elephantlog.EINTERNAL, "create output directory: %v", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, elephantlog.Errorf(elephantlog.EINTERNAL, "create output file: %v", err)
	}
	w, err := NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

// WriteRecord appends rec as one row.
func (w *Writer) WriteRecord(ctx context.Context, rec *elephantlog.IncidentRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.write(Row(rec))
}

// Close flushes pending output and closes the underlying writer.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.w.Flush()
	err := w.w.Error()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}

func (w *Writer) write(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.w.Write(row); err != nil {
		return elephantlog.Errorf(elephantlog.EINTERNAL, "write csv row: %v", err)
	}
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return elephantlog.Errorf(elephantlog.EINTERNAL, "flush csv row: %v", err)
	}
	return nil
}

// Row renders rec in column order. An unknown elephant count is an empty
// cell; unresolved places and dates are empty cells.
func Row(rec *elephantlog.IncidentRecord) []string {
	count := ""
	if rec.ElephantCount != nil {
		count = strconv.Itoa(*rec.ElephantCount)
	}
	return []string{
		rec.Date.String(),
		string(rec.Location.State),
		rec.Location.District,
		rec.Location.Block,
		rec.Location.Village,
		count,
		string(rec.IncidentType),
		strconv.Itoa(rec.HumanDeaths),
		strconv.Itoa(rec.ElephantDeaths),
		rec.Damage.String(),
		rec.Source,
		rec.URL,
	}
}
