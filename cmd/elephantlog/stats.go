package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/elephantlog"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", elephantlog.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs archived yet. Use 'elephantlog run' to process articles.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, "Recent runs:")
	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "  %s  %s  %s\n", r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), formatCounts(r))
	}

	var filter elephantlog.RecordFilter
	if c.RunID != "" {
		filter.RunID = &c.RunID
	}
	dist, err := deps.Records.StateDistribution(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", elephantlog.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "\nState-wise distribution:")
	if len(dist) == 0 {
		fmt.Fprintln(deps.Stdout, "  no records")
		return nil
	}
	var total int
	for _, sc := range dist {
		fmt.Fprintf(deps.Stdout, "  %-16s %d\n", sc.State, sc.Count)
		total += sc.Count
	}
	fmt.Fprintf(deps.Stdout, "  %-16s %d\n", "Total", total)
	return nil
}

func formatCounts(r *elephantlog.Run) string {
	if !r.Finished() {
		return "(unfinished)"
	}
	parts := make([]string, 0, len(elephantlog.OutcomeKinds()))
	for _, kind := range elephantlog.OutcomeKinds() {
		parts = append(parts, fmt.Sprintf("%s=%d", kind, r.Counts[kind]))
	}
	return strings.Join(parts, " ")
}
