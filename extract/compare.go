package extract

import (
	"context"
	"slices"

	"github.com/fwojciec/elephantlog"
	"golang.org/x/sync/errgroup"
)

// Ensure CompareExtractor implements elephantlog.RecordExtractor.
var _ elephantlog.RecordExtractor = (*CompareExtractor)(nil)

// DiffFunc receives the columns on which two strategies disagreed for url.
type DiffFunc func(url string, primary, secondary *elephantlog.Outcome, columns []string)

// CompareExtractor runs two strategies on the same article and returns the
// primary's outcome. Disagreements are reported through OnDiff.
type CompareExtractor struct {
	Primary   elephantlog.RecordExtractor
	Secondary elephantlog.RecordExtractor
	OnDiff    DiffFunc
}

// Extract runs both strategies concurrently. A secondary failure is
// reported as a difference and never changes the returned outcome.
func (e *CompareExtractor) Extract(ctx context.Context, article *elephantlog.Article) (*elephantlog.Outcome, error) {
	var primary, secondary *elephantlog.Outcome
	var secondaryErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		primary, err = e.Primary.Extract(gctx, article)
		return err
	})
	g.Go(func() error {
		secondary, secondaryErr = e.Secondary.Extract(gctx, article)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if secondaryErr != nil {
		secondary = elephantlog.NewRejected(elephantlog.ParseFailed, article.URL, secondaryErr)
	}
	if cols := Diff(primary, secondary); len(cols) > 0 && e.OnDiff != nil {
		e.OnDiff(article.URL, primary, secondary, cols)
	}
	return primary, nil
}

// Diff returns the columns on which two outcomes disagree, in column order.
// Outcomes of different kinds disagree on every column.
func Diff(a, b *elephantlog.Outcome) []string {
	if a == nil || b == nil || a.Kind != b.Kind {
		return elephantlog.Columns()
	}
	if a.Record == nil || b.Record == nil {
		if a.Record != b.Record {
			return elephantlog.Columns()
		}
		return nil
	}

	ra, rb := a.Record, b.Record
	var cols []string
	add := func(col string, same bool) {
		if !same {
			cols = append(cols, col)
		}
	}
	add(elephantlog.ColumnDate, ra.Date == rb.Date)
	add(elephantlog.ColumnState, ra.Location.State == rb.Location.State)
	add(elephantlog.ColumnDistrict, ra.Location.District == rb.Location.District)
	add(elephantlog.ColumnBlock, ra.Location.Block == rb.Location.Block)
	add(elephantlog.ColumnVillage, ra.Location.Village == rb.Location.Village)
	add(elephantlog.ColumnElephants, equalCount(ra.ElephantCount, rb.ElephantCount))
	add(elephantlog.ColumnIncidentType, ra.IncidentType == rb.IncidentType)
	add(elephantlog.ColumnHumanDeaths, ra.HumanDeaths == rb.HumanDeaths)
	add(elephantlog.ColumnElephantDeaths, ra.ElephantDeaths == rb.ElephantDeaths)
	add(elephantlog.ColumnDamage, slices.Equal(ra.Damage, rb.Damage))
	return cols
}

func equalCount(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
