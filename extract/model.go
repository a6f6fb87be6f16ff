package extract

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/elephantlog"
)

// Ensure ModelExtractor implements elephantlog.RecordExtractor.
var _ elephantlog.RecordExtractor = (*ModelExtractor)(nil)

// ModelExtractor extracts records by asking an AI model for the fields,
// then runs the reply through the same normalization and gates as
// RuleExtractor.
type ModelExtractor struct {
	Model      elephantlog.FieldExtractor
	Config     elephantlog.Config
	Dates      *DateNormalizer
	Locations  *LocationResolver
	Classifier *Classifier

	// RetryDelays holds the wait before each retry of a failed model call.
	RetryDelays []time.Duration
}

// NewModelExtractor returns a ModelExtractor over model using the embedded
// gazetteer and keyword sets.
func NewModelExtractor(model elephantlog.FieldExtractor, cfg elephantlog.Config) (*ModelExtractor, error) {
	g, err := DefaultGazetteer()
	if err != nil {
		return nil, err
	}
	c, err := DefaultClassifier()
	if err != nil {
		return nil, err
	}
	delays := make([]time.Duration, cfg.AIRetries)
	for i := range delays {
		delays[i] = time.Duration(i+1) * time.Second
	}
	return &ModelExtractor{
		Model:       model,
		Config:      cfg,
		Dates:       NewDateNormalizer(cfg),
		Locations:   NewLocationResolver(g, cfg.States),
		Classifier:  c,
		RetryDelays: delays,
	}, nil
}

// Extract calls the model, retrying malformed replies and timeouts, and
// assembles the result. When every attempt fails the outcome is ParseFailed.
func (e *ModelExtractor) Extract(ctx context.Context, article *elephantlog.Article) (*elephantlog.Outcome, error) {
	if err := article.Validate(); err != nil {
		return elephantlog.NewRejected(elephantlog.ParseFailed, article.URL, err), nil
	}

	raw, err := e.call(ctx, article)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return elephantlog.NewRejected(elephantlog.ParseFailed, article.URL, err), nil
	}

	a := *article
	if a.Source == "" && raw.Source != nil {
		a.Source = *raw.Source
	}
	return Assemble(&e.Config, &a, e.Fields(article, raw)), nil
}

func (e *ModelExtractor) call(ctx context.Context, article *elephantlog.Article) (*elephantlog.RawRecord, error) {
	var lastErr error
	for attempt := 0; attempt <= len(e.RetryDelays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(e.RetryDelays[attempt-1]):
			}
		}

		raw, err := e.callOnce(ctx, article)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (e *ModelExtractor) callOnce(ctx context.Context, article *elephantlog.Article) (*elephantlog.RawRecord, error) {
	if e.Config.AITimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Config.AITimeout)
		defer cancel()
	}
	raw, err := e.Model.ExtractFields(ctx, article)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, elephantlog.Errorf(elephantlog.EPARSE, "model call timed out after %s", e.Config.AITimeout)
	}
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, elephantlog.Errorf(elephantlog.EPARSE, "model returned no fields")
	}
	return raw, nil
}

// Fields normalizes a model reply the way RuleExtractor normalizes its own
// matches: dates through the date normalizer, places through the gazetteer,
// labels through the classifier. The model's date is tried before the
// article's own date candidates. Negative counts are treated as unknown.
func (e *ModelExtractor) Fields(article *elephantlog.Article, raw *elephantlog.RawRecord) Extraction {
	var x Extraction

	candidates := DateCandidates(article)
	if raw.Date != nil {
		candidates = append([]string{*raw.Date}, candidates...)
	}
	x.Date, x.DateResolved = e.Dates.Parse(candidates)

	if raw.State != nil {
		if st, ok := e.Locations.CanonicalState(*raw.State); ok {
			x.LocationResolved = true
			x.Location = elephantlog.Location{
				State:    st,
				District: e.Locations.CanonicalPlace(value(raw.District), LevelDistrict, st),
				Block:    e.Locations.CanonicalPlace(value(raw.Block), LevelBlock, st),
				Village:  e.Locations.CanonicalPlace(value(raw.Village), LevelVillage, st),
			}
		}
	}

	x.Counts = elephantlog.Counts{
		ElephantCount:  nonNegative(raw.ElephantCount),
		HumanDeaths:    nonNegative(raw.HumanDeaths),
		ElephantDeaths: nonNegative(raw.ElephantDeaths),
	}

	x.Classification.IncidentType = elephantlog.IncidentOther
	if raw.IncidentType != nil {
		x.Classification.IncidentType = e.Classifier.IncidentType(*raw.IncidentType)
	}
	if raw.Damage != nil {
		x.Classification.Damage = e.Classifier.DamageSet(*raw.Damage)
	}
	return x
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNegative(n *int) *int {
	if n == nil || *n < 0 {
		return nil
	}
	return n
}
