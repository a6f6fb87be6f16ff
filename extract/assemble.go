package extract

import "github.com/fwojciec/elephantlog"

// Extraction holds the per-field results for one article before assembly.
type Extraction struct {
	// Date is the parsed date before bounds are applied.
	Date         elephantlog.Date
	DateResolved bool

	Location         elephantlog.Location
	LocationResolved bool

	Counts         elephantlog.Counts
	Classification elephantlog.Classification
}

// Assemble gates x and builds the record for article.
//
// The date gate runs first: with date filtering on, an unresolved or
// out-of-range date is RejectedDate. The state gate follows: a location
// outside the configured states is RejectedState. Missing death counts
// become zero; a missing elephant count stays unknown. Assemble has no
// side effects and equal inputs yield equal records.
func Assemble(cfg *elephantlog.Config, article *elephantlog.Article, x Extraction) *elephantlog.Outcome {
	if cfg.FilterByDate && (!x.DateResolved || !cfg.DateInRange(x.Date)) {
		return elephantlog.NewRejected(elephantlog.RejectedDate, article.URL, nil)
	}
	if !x.LocationResolved || !cfg.StateAllowed(x.Location.State) {
		return elephantlog.NewRejected(elephantlog.RejectedState, article.URL, nil)
	}

	rec := &elephantlog.IncidentRecord{
		Location:       x.Location,
		IncidentType:   x.Classification.IncidentType,
		HumanDeaths:    deref(x.Counts.HumanDeaths),
		ElephantDeaths: deref(x.Counts.ElephantDeaths),
		Damage:         elephantlog.NewDamageSet(x.Classification.Damage...),
		Source:         sourceName(article),
		URL:            article.URL,
	}
	if x.DateResolved {
		rec.Date = x.Date
	}
	if x.Counts.ElephantCount != nil {
		rec.ElephantCount = elephantlog.Int(*x.Counts.ElephantCount)
	}
	if rec.IncidentType == "" {
		rec.IncidentType = elephantlog.IncidentOther
	}
	if err := rec.Validate(); err != nil {
		return elephantlog.NewRejected(elephantlog.ParseFailed, article.URL, err)
	}
	return elephantlog.NewAccepted(rec)
}

func deref(n *int) int {
	if n == nil || *n < 0 {
		return 0
	}
	return *n
}

// sourceName falls back to the article host when the page named no publication.
func sourceName(a *elephantlog.Article) string {
	if a.Source != "" {
		return a.Source
	}
	return elephantlog.Host(a.URL)
}
