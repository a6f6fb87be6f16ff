package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/elephantlog"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ elephantlog.RunService = (*RunService)(nil)

// RunService implements elephantlog.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun starts a new run.
func (s *RunService) CreateRun(ctx context.Context, run *elephantlog.Run) error {
	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()
	run.Counts = make(map[elephantlog.OutcomeKind]int)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at)
		VALUES (?, ?)
	`, run.ID, formatTime(run.StartedAt))

	return err
}

// FinishRun stores the outcome tally of a run.
func (s *RunService) FinishRun(ctx context.Context, id string, summary *elephantlog.Summary) error {
	c := summary.Counts
	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, accepted = ?, rejected_date = ?, rejected_state = ?, fetch_failed = ?, parse_failed = ?
		WHERE id = ?
	`, formatTime(time.Now()),
		c[elephantlog.Accepted], c[elephantlog.RejectedDate], c[elephantlog.RejectedState],
		c[elephantlog.FetchFailed], c[elephantlog.ParseFailed], id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return elephantlog.Errorf(elephantlog.ENOTFOUND, "run not found")
	}
	return nil
}

// FindRuns returns runs, most recent first. A limit of 0 returns all runs.
func (s *RunService) FindRuns(ctx context.Context, limit int) ([]*elephantlog.Run, error) {
	query := `
		SELECT id, started_at, finished_at, accepted, rejected_date, rejected_state, fetch_failed, parse_failed
		FROM runs
		ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*elephantlog.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanRun(rows *sql.Rows) (*elephantlog.Run, error) {
	var run elephantlog.Run
	var startedAt, finishedAt string
	var accepted, rejectedDate, rejectedState, fetchFailed, parseFailed int

	if err := rows.Scan(&run.ID, &startedAt, &finishedAt,
		&accepted, &rejectedDate, &rejectedState, &fetchFailed, &parseFailed); err != nil {
		return nil, err
	}

	var err error
	if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if finishedAt != "" {
		if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
	}

	run.Counts = map[elephantlog.OutcomeKind]int{
		elephantlog.Accepted:      accepted,
		elephantlog.RejectedDate:  rejectedDate,
		elephantlog.RejectedState: rejectedState,
		elephantlog.FetchFailed:   fetchFailed,
		elephantlog.ParseFailed:   parseFailed,
	}
	return &run, nil
}
