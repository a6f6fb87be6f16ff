package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/pipeline"
)

// coverageColumns are reported in the field coverage section.
var coverageColumns = []string{
	elephantlog.ColumnState,
	elephantlog.ColumnDistrict,
	elephantlog.ColumnElephants,
	elephantlog.ColumnIncidentType,
	elephantlog.ColumnHumanDeaths,
	elephantlog.ColumnElephantDeaths,
	elephantlog.ColumnDamage,
}

// printSummary writes the outcome totals, field coverage, and state
// distribution of a finished run.
func printSummary(w io.Writer, result *pipeline.Result, total int, s *session) {
	sum := result.Summary

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	if result.Interrupted {
		fmt.Fprintf(w, "INTERRUPTED after %d of %d articles\n", sum.Total(), total)
	} else {
		fmt.Fprintf(w, "Processed %d articles\n", sum.Total())
	}
	fmt.Fprintln(w, strings.Repeat("=", 50))

	for _, kind := range elephantlog.OutcomeKinds() {
		fmt.Fprintf(w, "  %-15s %d\n", kind, sum.Counts[kind])
	}

	fmt.Fprintf(w, "\nData saved to: %s\n", s.path)
	if s.run != nil {
		fmt.Fprintf(w, "Archived as run %s\n", s.run.ID)
	}

	accepted := sum.Counts[elephantlog.Accepted]
	if accepted == 0 {
		return
	}

	fmt.Fprintln(w, "\nField coverage:")
	for _, col := range coverageColumns {
		label := col
		if col == elephantlog.ColumnHumanDeaths || col == elephantlog.ColumnElephantDeaths {
			label += " (non-zero)"
		}
		fmt.Fprintf(w, "  %-27s %d/%d\n", label, sum.Fields[col], accepted)
	}

	fmt.Fprintln(w, "\nState-wise distribution:")
	for _, sc := range sum.StateDistribution() {
		fmt.Fprintf(w, "  %s: %d %s\n", sc.State, sc.Count, plural(sc.Count, "article", "articles"))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
