package mock

import (
	"context"

	"github.com/fwojciec/elephantlog"
)

var _ elephantlog.RunService = (*RunService)(nil)

// RunService is a mock implementation of elephantlog.RunService.
type RunService struct {
	CreateRunFn func(ctx context.Context, run *elephantlog.Run) error
	FinishRunFn func(ctx context.Context, id string, summary *elephantlog.Summary) error
	FindRunsFn  func(ctx context.Context, limit int) ([]*elephantlog.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *elephantlog.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FinishRun(ctx context.Context, id string, summary *elephantlog.Summary) error {
	return s.FinishRunFn(ctx, id, summary)
}

func (s *RunService) FindRuns(ctx context.Context, limit int) ([]*elephantlog.Run, error) {
	return s.FindRunsFn(ctx, limit)
}

var _ elephantlog.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of elephantlog.RecordService.
type RecordService struct {
	CreateRecordFn      func(ctx context.Context, runID string, rec *elephantlog.IncidentRecord) (*elephantlog.StoredRecord, error)
	FindRecordsFn       func(ctx context.Context, filter elephantlog.RecordFilter) ([]*elephantlog.StoredRecord, error)
	StateDistributionFn func(ctx context.Context, filter elephantlog.RecordFilter) ([]elephantlog.StateCount, error)
}

func (s *RecordService) CreateRecord(ctx context.Context, runID string, rec *elephantlog.IncidentRecord) (*elephantlog.StoredRecord, error) {
	return s.CreateRecordFn(ctx, runID, rec)
}

func (s *RecordService) FindRecords(ctx context.Context, filter elephantlog.RecordFilter) ([]*elephantlog.StoredRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) StateDistribution(ctx context.Context, filter elephantlog.RecordFilter) ([]elephantlog.StateCount, error) {
	return s.StateDistributionFn(ctx, filter)
}
