package mock

import (
	"context"

	"github.com/fwojciec/elephantlog"
)

var _ elephantlog.RecordExtractor = (*RecordExtractor)(nil)

// RecordExtractor is a mock implementation of elephantlog.RecordExtractor.
type RecordExtractor struct {
	ExtractFn func(ctx context.Context, article *elephantlog.Article) (*elephantlog.Outcome, error)
}

func (e *RecordExtractor) Extract(ctx context.Context, article *elephantlog.Article) (*elephantlog.Outcome, error) {
	return e.ExtractFn(ctx, article)
}

var _ elephantlog.FieldExtractor = (*FieldExtractor)(nil)

// FieldExtractor is a mock implementation of elephantlog.FieldExtractor.
type FieldExtractor struct {
	ExtractFieldsFn func(ctx context.Context, article *elephantlog.Article) (*elephantlog.RawRecord, error)
}

func (e *FieldExtractor) ExtractFields(ctx context.Context, article *elephantlog.Article) (*elephantlog.RawRecord, error) {
	return e.ExtractFieldsFn(ctx, article)
}
