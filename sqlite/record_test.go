package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRun(t *testing.T, db *sqlite.DB) string {
	t.Helper()
	run := &elephantlog.Run{}
	require.NoError(t, sqlite.NewRunService(db).CreateRun(context.Background(), run))
	return run.ID
}

func record(state elephantlog.State, url string) *elephantlog.IncidentRecord {
	return &elephantlog.IncidentRecord{
		Date:           elephantlog.Date{Year: 2021, Month: 3, Day: 14},
		Location:       elephantlog.Location{State: state, District: "Bastar", Village: "Tapkara"},
		ElephantCount:  elephantlog.Int(5),
		IncidentType:   elephantlog.IncidentCropDamage,
		HumanDeaths:    1,
		ElephantDeaths: 0,
		Damage:         elephantlog.NewDamageSet(elephantlog.DamageCrop, elephantlog.DamageProperty),
		Source:         "The Hindu",
		URL:            url,
	}
}

func TestRecordService_CreateRecord(t *testing.T) {
	t.Parallel()

	t.Run("round-trips every field", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := openDB(t)
		runID := newRun(t, db)
		svc := sqlite.NewRecordService(db)
		rec := record(elephantlog.Chhattisgarh, "https://example.com/a")

		stored, err := svc.CreateRecord(ctx, runID, rec)
		require.NoError(t, err)
		assert.NotEmpty(t, stored.ID)
		assert.Len(t, stored.URLHash, 16)

		found, err := svc.FindRecords(ctx, elephantlog.RecordFilter{})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, stored.ID, found[0].ID)
		assert.Equal(t, runID, found[0].RunID)
		assert.Equal(t, *rec, found[0].IncidentRecord)
	})

	t.Run("keeps an unknown elephant count and empty date", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := openDB(t)
		svc := sqlite.NewRecordService(db)
		rec := record(elephantlog.Maharashtra, "https://example.com/b")
		rec.ElephantCount = nil
		rec.Date = elephantlog.Date{}
		rec.Damage = nil

		_, err := svc.CreateRecord(ctx, newRun(t, db), rec)
		require.NoError(t, err)

		found, err := svc.FindRecords(ctx, elephantlog.RecordFilter{})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Nil(t, found[0].ElephantCount)
		assert.True(t, found[0].Date.IsZero())
		assert.Empty(t, found[0].Damage)
	})

	t.Run("stores the same URL twice", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := openDB(t)
		svc := sqlite.NewRecordService(db)
		url := "https://example.com/same"

		_, err := svc.CreateRecord(ctx, newRun(t, db), record(elephantlog.Telangana, url))
		require.NoError(t, err)
		_, err = svc.CreateRecord(ctx, newRun(t, db), record(elephantlog.Telangana, url))
		require.NoError(t, err)

		found, err := svc.FindRecords(ctx, elephantlog.RecordFilter{URL: &url})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("rejects invalid records", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		svc := sqlite.NewRecordService(db)
		rec := record("", "https://example.com/c")

		_, err := svc.CreateRecord(context.Background(), newRun(t, db), rec)

		require.Error(t, err)
		assert.Equal(t, elephantlog.EINVALID, elephantlog.ErrorCode(err))
	})

	t.Run("requires a run ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(openDB(t))

		_, err := svc.CreateRecord(context.Background(), "", record(elephantlog.Telangana, "https://example.com/d"))

		require.Error(t, err)
		assert.Equal(t, elephantlog.EINVALID, elephantlog.ErrorCode(err))
	})

	t.Run("fails for an unknown run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(openDB(t))

		_, err := svc.CreateRecord(context.Background(), "missing", record(elephantlog.Telangana, "https://example.com/e"))

		require.Error(t, err)
	})
}

func TestRecordService_FindRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openDB(t)
	svc := sqlite.NewRecordService(db)
	first, second := newRun(t, db), newRun(t, db)
	for i, rec := range []struct {
		run   string
		state elephantlog.State
	}{
		{first, elephantlog.Chhattisgarh},
		{first, elephantlog.MadhyaPradesh},
		{second, elephantlog.Chhattisgarh},
		{second, elephantlog.Chhattisgarh},
	} {
		_, err := svc.CreateRecord(ctx, rec.run, record(rec.state, "https://example.com/"+string(rune('a'+i))))
		require.NoError(t, err)
	}

	t.Run("filters by run", func(t *testing.T) {
		t.Parallel()

		found, err := svc.FindRecords(ctx, elephantlog.RecordFilter{RunID: &first})

		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "https://example.com/a", found[0].URL)
		assert.Equal(t, "https://example.com/b", found[1].URL)
	})

	t.Run("filters by state", func(t *testing.T) {
		t.Parallel()

		state := elephantlog.Chhattisgarh
		found, err := svc.FindRecords(ctx, elephantlog.RecordFilter{State: &state})

		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		found, err := svc.FindRecords(ctx, elephantlog.RecordFilter{Limit: 2, Offset: 1})

		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "https://example.com/b", found[0].URL)
		assert.Equal(t, "https://example.com/c", found[1].URL)
	})

	t.Run("skips without a limit", func(t *testing.T) {
		t.Parallel()

		found, err := svc.FindRecords(ctx, elephantlog.RecordFilter{Offset: 3})

		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "https://example.com/d", found[0].URL)
	})

	t.Run("counts records per state", func(t *testing.T) {
		t.Parallel()

		dist, err := svc.StateDistribution(ctx, elephantlog.RecordFilter{})

		require.NoError(t, err)
		assert.Equal(t, []elephantlog.StateCount{
			{State: elephantlog.Chhattisgarh, Count: 3},
			{State: elephantlog.MadhyaPradesh, Count: 1},
		}, dist)

		dist, err = svc.StateDistribution(ctx, elephantlog.RecordFilter{RunID: &first})
		require.NoError(t, err)
		assert.Equal(t, []elephantlog.StateCount{
			{State: elephantlog.Chhattisgarh, Count: 1},
			{State: elephantlog.MadhyaPradesh, Count: 1},
		}, dist)
	})
}

func TestRecordWriter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openDB(t)
	runID := newRun(t, db)
	svc := sqlite.NewRecordService(db)
	w := sqlite.NewRecordWriter(svc, runID)

	require.NoError(t, w.WriteRecord(ctx, record(elephantlog.AndhraPradesh, "https://example.com/w")))
	require.NoError(t, w.Close())

	found, err := svc.FindRecords(ctx, elephantlog.RecordFilter{RunID: &runID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, elephantlog.AndhraPradesh, found[0].Location.State)
}
