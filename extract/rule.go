package extract

import (
	"context"

	"github.com/fwojciec/elephantlog"
)

// Ensure RuleExtractor implements elephantlog.RecordExtractor.
var _ elephantlog.RecordExtractor = (*RuleExtractor)(nil)

// RuleExtractor extracts records with the gazetteer, count patterns, and
// keyword classifier. It makes no network calls.
type RuleExtractor struct {
	Config     elephantlog.Config
	Dates      *DateNormalizer
	Locations  *LocationResolver
	Classifier *Classifier
}

// NewRuleExtractor returns a RuleExtractor over the embedded gazetteer and
// keyword sets.
func NewRuleExtractor(cfg elephantlog.Config) (*RuleExtractor, error) {
	g, err := DefaultGazetteer()
	if err != nil {
		return nil, err
	}
	c, err := DefaultClassifier()
	if err != nil {
		return nil, err
	}
	return &RuleExtractor{
		Config:     cfg,
		Dates:      NewDateNormalizer(cfg),
		Locations:  NewLocationResolver(g, cfg.States),
		Classifier: c,
	}, nil
}

// Extract runs every field extractor over the article and assembles the result.
func (e *RuleExtractor) Extract(ctx context.Context, article *elephantlog.Article) (*elephantlog.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := article.Validate(); err != nil {
		return elephantlog.NewRejected(elephantlog.ParseFailed, article.URL, err), nil
	}
	return Assemble(&e.Config, article, e.Fields(article)), nil
}

// Fields returns the raw per-field extraction for article.
func (e *RuleExtractor) Fields(article *elephantlog.Article) Extraction {
	text := article.FullText()

	var x Extraction
	x.Date, x.DateResolved = e.Dates.Parse(DateCandidates(article))
	x.Location, x.LocationResolved = e.Locations.Resolve(text)
	x.Counts = ExtractCounts(text)
	x.Classification = e.Classifier.Classify(text)
	return x
}
