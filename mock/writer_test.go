package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where RecordWriter is expected
	var _ elephantlog.RecordWriter = &mock.RecordWriter{}
}

func TestRecordWriter_WriteRecord(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteRecordFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *elephantlog.IncidentRecord
		w := &mock.RecordWriter{
			WriteRecordFn: func(_ context.Context, rec *elephantlog.IncidentRecord) error {
				calledWith = rec
				return nil
			},
		}

		rec := &elephantlog.IncidentRecord{
			Date:         elephantlog.Date{Year: 2021, Month: 3, Day: 14},
			Location:     elephantlog.Location{State: elephantlog.Chhattisgarh, District: "Bastar"},
			IncidentType: elephantlog.IncidentCropDamage,
			URL:          "https://example.com/article",
		}
		err := w.WriteRecord(context.Background(), rec)

		require.NoError(t, err)
		assert.Equal(t, rec, calledWith)
	})
}
