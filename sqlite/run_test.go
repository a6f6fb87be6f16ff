package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(sqlite.MemoryPath)
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunService(t *testing.T) {
	t.Parallel()

	t.Run("creates a run with an ID and start time", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		run := &elephantlog.Run{}

		require.NoError(t, svc.CreateRun(context.Background(), run))

		assert.NotEmpty(t, run.ID)
		assert.False(t, run.StartedAt.IsZero())
		assert.False(t, run.Finished())
	})

	t.Run("stores the tally when the run finishes", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewRunService(openDB(t))
		run := &elephantlog.Run{}
		require.NoError(t, svc.CreateRun(ctx, run))

		summary := elephantlog.NewSummary()
		summary.Counts[elephantlog.Accepted] = 3
		summary.Counts[elephantlog.RejectedDate] = 1
		summary.Counts[elephantlog.FetchFailed] = 2
		require.NoError(t, svc.FinishRun(ctx, run.ID, summary))

		runs, err := svc.FindRuns(ctx, 0)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.True(t, runs[0].Finished())
		assert.Equal(t, map[elephantlog.OutcomeKind]int{
			elephantlog.Accepted:      3,
			elephantlog.RejectedDate:  1,
			elephantlog.RejectedState: 0,
			elephantlog.FetchFailed:   2,
			elephantlog.ParseFailed:   0,
		}, runs[0].Counts)
	})

	t.Run("returns ENOTFOUND when finishing an unknown run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))

		err := svc.FinishRun(context.Background(), "missing", elephantlog.NewSummary())

		require.Error(t, err)
		assert.Equal(t, elephantlog.ENOTFOUND, elephantlog.ErrorCode(err))
	})

	t.Run("lists the most recent runs first", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewRunService(openDB(t))
		var ids []string
		for range 3 {
			run := &elephantlog.Run{}
			require.NoError(t, svc.CreateRun(ctx, run))
			ids = append(ids, run.ID)
		}

		runs, err := svc.FindRuns(ctx, 2)

		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, ids[2], runs[0].ID)
		assert.Equal(t, ids[1], runs[1].ID)
	})
}
