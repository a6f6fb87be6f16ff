package main

import (
	"fmt"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/pipeline"
)

// SampleSource names the publication of the built-in articles.
const SampleSource = "Sample Data"

// SampleArticles returns five short reports, one per recognized state,
// used to exercise extraction without network access.
func SampleArticles() []*elephantlog.Article {
	return []*elephantlog.Article{
		{
			URL:       "https://example.com/sample1",
			Title:     "Three elephants spotted in Bastar district, Chhattisgarh",
			Published: "2024-01-15",
			Source:    SampleSource,
			Text:      "Three elephants were sighted near the village of Kondagaon in Bastar district, Chhattisgarh. The elephants caused crop damage to local farmers. Forest officials are monitoring the situation.",
		},
		{
			URL:       "https://example.com/sample2",
			Title:     "Elephant attack kills two people in Madhya Pradesh",
			Published: "2024-02-20",
			Source:    SampleSource,
			Text:      "Two people were killed when an elephant attacked them in Seoni district, Madhya Pradesh. The incident occurred when the victims were working in their field. Forest department has launched an investigation.",
		},
		{
			URL:       "https://example.com/sample3",
			Title:     "Elephant herd enters village in Maharashtra",
			Published: "2024-03-10",
			Source:    SampleSource,
			Text:      "A herd of five elephants entered a village in Gadchiroli district, Maharashtra. The elephants damaged several houses and crops. No human casualties were reported.",
		},
		{
			URL:       "https://example.com/sample4",
			Title:     "Dead elephant found in Telangana forest",
			Published: "2024-04-05",
			Source:    SampleSource,
			Text:      "A dead elephant was found in Adilabad district, Telangana. The cause of death is under investigation. Forest officials suspect natural causes.",
		},
		{
			URL:       "https://example.com/sample5",
			Title:     "Human-elephant conflict escalates in Andhra Pradesh",
			Published: "2024-05-12",
			Source:    SampleSource,
			Text:      "Human-elephant conflict has escalated in Visakhapatnam district, Andhra Pradesh. Elephants have been raiding crops and causing property damage. Local authorities are working on mitigation measures.",
		},
	}
}

// Run executes the sample command.
func (c *SampleCmd) Run(deps *Dependencies) error {
	records, err := newRecordExtractor(c.Flags, deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", elephantlog.ErrorMessage(err))
		return err
	}

	s, err := startSession(deps, c.Flags.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", elephantlog.ErrorMessage(err))
		return err
	}

	runner := &pipeline.Runner{
		Records: records,
		Writer:  s.writer,
		Logger:  deps.logger(),
	}

	articles := SampleArticles()
	result, runErr := runner.RunArticles(deps.Ctx, articles, func(event pipeline.ProgressEvent) {
		if event.Type != pipeline.ProgressCompleted {
			return
		}
		printOutcome(deps, articles[event.Completed-1], event.Outcome)
	})

	finishErr := s.finish(result.Summary)
	printSummary(deps.Stdout, result, len(articles), s)

	if runErr != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", runErr)
		return runErr
	}
	return finishErr
}

func printOutcome(deps *Dependencies, article *elephantlog.Article, outcome *elephantlog.Outcome) {
	w := deps.Stdout
	fmt.Fprintf(w, "\n%s\n", article.Title)
	if outcome.Kind != elephantlog.Accepted {
		fmt.Fprintf(w, "  Outcome: %s\n", outcome.Kind)
		return
	}
	rec := outcome.Record
	count := "unknown"
	if rec.ElephantCount != nil {
		count = fmt.Sprint(*rec.ElephantCount)
	}
	fmt.Fprintf(w, "  Date: %s\n", rec.Date)
	fmt.Fprintf(w, "  State: %s\n", rec.Location.State)
	fmt.Fprintf(w, "  District: %s\n", rec.Location.District)
	fmt.Fprintf(w, "  No. of Elephants: %s\n", count)
	fmt.Fprintf(w, "  Type of Incident: %s\n", rec.IncidentType)
	fmt.Fprintf(w, "  Human Deaths: %d\n", rec.HumanDeaths)
	fmt.Fprintf(w, "  Elephant Deaths: %d\n", rec.ElephantDeaths)
	fmt.Fprintf(w, "  Damage: %s\n", rec.Damage)
}
