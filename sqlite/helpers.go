package sqlite

import (
	"strings"
	"time"

	"github.com/fwojciec/elephantlog"
)

// timeLayout is how timestamps are stored. RFC 3339 strings sort in time order.
const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, elephantlog.Errorf(elephantlog.EINTERNAL, "corrupt %s %q: %v", column, value, err)
	}
	return t, nil
}

// where collects AND-ed conditions and their arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) and(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// recordWhere narrows the records table to filter. Limit and offset are
// left to the caller.
func recordWhere(filter elephantlog.RecordFilter) *where {
	w := &where{}
	if filter.RunID != nil {
		w.and("run_id = ?", *filter.RunID)
	}
	if filter.State != nil {
		w.and("state = ?", string(*filter.State))
	}
	if filter.URL != nil {
		w.and("url_hash = ? AND url = ?", hashURL(*filter.URL), *filter.URL)
	}
	return w
}

// limitOffset returns the paging clause for positive limit and offset.
// SQLite needs a LIMIT before it accepts an OFFSET.
func limitOffset(limit, offset int) (string, []any) {
	switch {
	case limit > 0 && offset > 0:
		return " LIMIT ? OFFSET ?", []any{limit, offset}
	case limit > 0:
		return " LIMIT ?", []any{limit}
	case offset > 0:
		return " LIMIT -1 OFFSET ?", []any{offset}
	}
	return "", nil
}
