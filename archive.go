package elephantlog

import (
	"context"
	"time"
)

// Run is one pipeline invocation recorded in the archive.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	// Counts is the outcome tally, set when the run finishes.
	Counts map[OutcomeKind]int `json:"counts"`
}

// Finished reports whether the run has been closed.
func (r *Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// RunService records pipeline invocations.
type RunService interface {
	// CreateRun starts a new run and assigns its ID and start time.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun stores the final tally of the run.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, id string, summary *Summary) error

	// FindRuns returns runs, most recent first.
	FindRuns(ctx context.Context, limit int) ([]*Run, error)
}

// StoredRecord is an accepted record as kept in the archive.
type StoredRecord struct {
	ID        string    `json:"id"`
	RunID     string    `json:"runId"`
	URLHash   string    `json:"urlHash"`
	CreatedAt time.Time `json:"createdAt"`

	IncidentRecord
}

// RecordService stores accepted records across runs.
// Re-processing a URL adds a new row; nothing is deduplicated.
type RecordService interface {
	// CreateRecord stores rec under runID.
	CreateRecord(ctx context.Context, runID string, rec *IncidentRecord) (*StoredRecord, error)

	// FindRecords retrieves records matching the filter, oldest first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*StoredRecord, error)

	// StateDistribution counts stored records per state, largest first.
	StateDistribution(ctx context.Context, filter RecordFilter) ([]StateCount, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	RunID *string `json:"runId"`
	State *State  `json:"state"`
	URL   *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
