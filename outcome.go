package elephantlog

import "sort"

// OutcomeKind tags the result of processing one article.
type OutcomeKind string

// Outcome kinds. Rejections are expected business outcomes, not errors.
const (
	Accepted      OutcomeKind = "accepted"
	RejectedDate  OutcomeKind = "rejected_date"
	RejectedState OutcomeKind = "rejected_state"
	FetchFailed   OutcomeKind = "fetch_failed"
	ParseFailed   OutcomeKind = "parse_failed"
)

// OutcomeKinds returns all outcome kinds in summary order.
func OutcomeKinds() []OutcomeKind {
	return []OutcomeKind{Accepted, RejectedDate, RejectedState, FetchFailed, ParseFailed}
}

// Outcome is the tagged result of processing one URL.
type Outcome struct {
	Kind OutcomeKind
	URL  string

	// Record is set only when Kind is Accepted.
	Record *IncidentRecord

	// Err holds the cause for FetchFailed and ParseFailed.
	Err error
}

// NewAccepted returns an Accepted outcome for rec.
func NewAccepted(rec *IncidentRecord) *Outcome {
	return &Outcome{Kind: Accepted, URL: rec.URL, Record: rec}
}

// NewRejected returns a rejection or failure outcome.
func NewRejected(kind OutcomeKind, url string, err error) *Outcome {
	return &Outcome{Kind: kind, URL: url, Err: err}
}

// Summary tallies outcomes over a run.
type Summary struct {
	Counts map[OutcomeKind]int

	// States counts accepted records per state.
	States map[State]int

	// Fields counts accepted records with a non-empty value per column.
	// Death columns are never empty, so they count non-zero values.
	Fields map[string]int
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{
		Counts: make(map[OutcomeKind]int),
		States: make(map[State]int),
		Fields: make(map[string]int),
	}
}

// Add tallies one outcome.
func (s *Summary) Add(o *Outcome) {
	s.Counts[o.Kind]++
	if o.Kind != Accepted || o.Record == nil {
		return
	}
	r := o.Record
	s.States[r.Location.State]++
	for _, f := range []struct {
		name string
		ok   bool
	}{
		{ColumnDate, !r.Date.IsZero()},
		{ColumnState, r.Location.State != ""},
		{ColumnDistrict, r.Location.District != ""},
		{ColumnBlock, r.Location.Block != ""},
		{ColumnVillage, r.Location.Village != ""},
		{ColumnElephants, r.ElephantCount != nil},
		{ColumnIncidentType, r.IncidentType != ""},
		{ColumnHumanDeaths, r.HumanDeaths > 0},
		{ColumnElephantDeaths, r.ElephantDeaths > 0},
		{ColumnDamage, len(r.Damage) > 0},
	} {
		if f.ok {
			s.Fields[f.name]++
		}
	}
}

// Total returns the number of outcomes tallied.
func (s *Summary) Total() int {
	var n int
	for _, c := range s.Counts {
		n += c
	}
	return n
}

// StateCount is one row of a state distribution.
type StateCount struct {
	State State
	Count int
}

// StateDistribution returns accepted counts per state, largest first,
// ties in name order.
func (s *Summary) StateDistribution() []StateCount {
	out := make([]StateCount, 0, len(s.States))
	for st, n := range s.States {
		out = append(out, StateCount{State: st, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].State < out[j].State
	})
	return out
}
