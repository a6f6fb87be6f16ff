package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/mock"
	"github.com/fwojciec/elephantlog/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to every writer", func(t *testing.T) {
		t.Parallel()

		var a, b []*elephantlog.IncidentRecord
		w := pipeline.NewMultiWriter(
			&mock.RecordWriter{WriteRecordFn: func(_ context.Context, r *elephantlog.IncidentRecord) error {
				a = append(a, r)
				return nil
			}},
			nil,
			&mock.RecordWriter{WriteRecordFn: func(_ context.Context, r *elephantlog.IncidentRecord) error {
				b = append(b, r)
				return nil
			}},
		)

		rec := &elephantlog.IncidentRecord{URL: "https://example.com/a"}
		require.NoError(t, w.WriteRecord(context.Background(), rec))

		assert.Equal(t, []*elephantlog.IncidentRecord{rec}, a)
		assert.Equal(t, []*elephantlog.IncidentRecord{rec}, b)
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		t.Parallel()

		called := false
		w := pipeline.NewMultiWriter(
			&mock.RecordWriter{WriteRecordFn: func(context.Context, *elephantlog.IncidentRecord) error {
				return errors.New("disk full")
			}},
			&mock.RecordWriter{WriteRecordFn: func(context.Context, *elephantlog.IncidentRecord) error {
				called = true
				return nil
			}},
		)

		err := w.WriteRecord(context.Background(), &elephantlog.IncidentRecord{})

		require.EqualError(t, err, "disk full")
		assert.False(t, called)
	})

	t.Run("closes every writer", func(t *testing.T) {
		t.Parallel()

		closed := 0
		closer := func() error { closed++; return nil }
		w := pipeline.NewMultiWriter(
			&mock.RecordWriter{CloseFn: func() error { closed++; return errors.New("flush failed") }},
			&mock.RecordWriter{CloseFn: closer},
		)

		err := w.Close()

		require.ErrorContains(t, err, "flush failed")
		assert.Equal(t, 2, closed)
	})
}
