package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/elephantlog"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ elephantlog.RecordService = (*RecordService)(nil)
	_ elephantlog.RecordWriter  = (*RecordWriter)(nil)
)

// RecordService implements elephantlog.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// hashURL computes xxHash of a URL and returns hex string.
func hashURL(url string) string {
	h := xxhash.Sum64String(url)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateRecord stores rec under runID.
func (s *RecordService) CreateRecord(ctx context.Context, runID string, rec *elephantlog.IncidentRecord) (*elephantlog.StoredRecord, error) {
	if runID == "" {
		return nil, elephantlog.Errorf(elephantlog.EINVALID, "run ID required")
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	stored := &elephantlog.StoredRecord{
		ID:             uuid.New().String(),
		RunID:          runID,
		URLHash:        hashURL(rec.URL),
		CreatedAt:      time.Now().UTC(),
		IncidentRecord: *rec,
	}

	var count sql.NullInt64
	if rec.ElephantCount != nil {
		count = sql.NullInt64{Int64: int64(*rec.ElephantCount), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, run_id, url, url_hash, date, state, district, block, village,
			elephant_count, incident_type, human_deaths, elephant_deaths, damage, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, stored.ID, runID, rec.URL, stored.URLHash, rec.Date.String(), string(rec.Location.State),
		rec.Location.District, rec.Location.Block, rec.Location.Village,
		count, string(rec.IncidentType), rec.HumanDeaths, rec.ElephantDeaths,
		rec.Damage.String(), rec.Source, formatTime(stored.CreatedAt))
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// FindRecords retrieves records matching the filter, oldest first.
func (s *RecordService) FindRecords(ctx context.Context, filter elephantlog.RecordFilter) ([]*elephantlog.StoredRecord, error) {
	w := recordWhere(filter)
	page, pageArgs := limitOffset(filter.Limit, filter.Offset)
	query := `SELECT id, run_id, url, url_hash, date, state, district, block, village,
		elephant_count, incident_type, human_deaths, elephant_deaths, damage, source, created_at
		FROM records` + w.String() + " ORDER BY created_at ASC, rowid ASC" + page

	rows, err := s.db.QueryContext(ctx, query, append(w.args, pageArgs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*elephantlog.StoredRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// StateDistribution counts records per state, largest first, ties in
// name order.
func (s *RecordService) StateDistribution(ctx context.Context, filter elephantlog.RecordFilter) ([]elephantlog.StateCount, error) {
	w := recordWhere(filter)
	query := "SELECT state, COUNT(*) FROM records" + w.String() + " GROUP BY state ORDER BY COUNT(*) DESC, state ASC"

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []elephantlog.StateCount
	for rows.Next() {
		var state string
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return nil, err
		}
		out = append(out, elephantlog.StateCount{State: elephantlog.State(state), Count: n})
	}
	return out, rows.Err()
}

func scanRecord(rows *sql.Rows) (*elephantlog.StoredRecord, error) {
	var rec elephantlog.StoredRecord
	var date, state, incidentType, damage, createdAt string
	var count sql.NullInt64

	if err := rows.Scan(&rec.ID, &rec.RunID, &rec.URL, &rec.URLHash, &date, &state,
		&rec.Location.District, &rec.Location.Block, &rec.Location.Village,
		&count, &incidentType, &rec.HumanDeaths, &rec.ElephantDeaths, &damage,
		&rec.Source, &createdAt); err != nil {
		return nil, err
	}

	if date != "" {
		d, err := elephantlog.ParseISODate(date)
		if err != nil {
			return nil, err
		}
		rec.Date = d
	}
	rec.Location.State = elephantlog.State(state)
	if count.Valid {
		rec.ElephantCount = elephantlog.Int(int(count.Int64))
	}
	rec.IncidentType = elephantlog.IncidentType(incidentType)
	rec.Damage = elephantlog.ParseDamageSet(damage)

	var err error
	if rec.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecordWriter archives accepted records of one run.
// It adapts RecordService to elephantlog.RecordWriter.
type RecordWriter struct {
	records elephantlog.RecordService
	runID   string
}

// NewRecordWriter creates a RecordWriter storing records under runID.
func NewRecordWriter(records elephantlog.RecordService, runID string) *RecordWriter {
	return &RecordWriter{records: records, runID: runID}
}

// WriteRecord stores rec.
func (w *RecordWriter) WriteRecord(ctx context.Context, rec *elephantlog.IncidentRecord) error {
	_, err := w.records.CreateRecord(ctx, w.runID, rec)
	return err
}

// Close is a no-op; the database is owned by the caller.
func (w *RecordWriter) Close() error {
	return nil
}
