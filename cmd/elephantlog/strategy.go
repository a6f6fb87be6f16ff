package main

import (
	"context"
	"strings"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/csv"
	"github.com/fwojciec/elephantlog/extract"
	"github.com/fwojciec/elephantlog/fs"
	"github.com/fwojciec/elephantlog/pipeline"
	elslog "github.com/fwojciec/elephantlog/slog"
	"github.com/fwojciec/elephantlog/sqlite"
)

// newRecordExtractor builds the extraction strategy selected by flags.
func newRecordExtractor(flags ExtractFlags, deps *Dependencies) (elephantlog.RecordExtractor, error) {
	logger := deps.logger()

	var strategy elephantlog.RecordExtractor
	switch flags.Mode {
	case ModeGemini, ModeOpenAI:
		model, err := newModelExtractor(flags.Mode, deps)
		if err != nil {
			return nil, err
		}
		strategy = model

	case ModeCompare:
		rules, err := extract.NewRuleExtractor(deps.Config)
		if err != nil {
			return nil, err
		}
		model, err := newModelExtractor(flags.CompareWith, deps)
		if err != nil {
			return nil, err
		}
		strategy = &extract.CompareExtractor{
			Primary:   rules,
			Secondary: model,
			OnDiff: func(url string, primary, secondary *elephantlog.Outcome, columns []string) {
				logger.Info("strategies disagree",
					"url", url,
					"rules", primary.Kind,
					flags.CompareWith, secondary.Kind,
					"columns", strings.Join(columns, ", "),
				)
			},
		}

	default:
		rules, err := extract.NewRuleExtractor(deps.Config)
		if err != nil {
			return nil, err
		}
		strategy = rules
	}

	return elslog.NewLoggingRecordExtractor(strategy, logger), nil
}

func newModelExtractor(name string, deps *Dependencies) (*extract.ModelExtractor, error) {
	var model elephantlog.FieldExtractor
	switch name {
	case ModeGemini:
		model = deps.Models.Gemini
		if model == nil {
			return nil, elephantlog.Errorf(elephantlog.ECONFIG, "gemini mode requires GEMINI_API_KEY")
		}
	case ModeOpenAI:
		model = deps.Models.OpenAI
		if model == nil {
			return nil, elephantlog.Errorf(elephantlog.ECONFIG, "openai mode requires OPENAI_API_KEY")
		}
	default:
		return nil, elephantlog.Errorf(elephantlog.ECONFIG, "unknown model %q", name)
	}
	return extract.NewModelExtractor(elslog.NewLoggingFieldExtractor(model, deps.logger()), deps.Config)
}

// session owns the outputs of one extraction run: the CSV file and, when
// an archive is open, the archived run.
type session struct {
	deps   *Dependencies
	path   string
	run    *elephantlog.Run
	writer elephantlog.RecordWriter
}

// startSession creates the timestamped CSV in outputDir and starts an
// archived run if deps has an archive.
func startSession(deps *Dependencies, outputDir string) (*session, error) {
	path := fs.OutputPath(outputDir, deps.now())
	file, err := csv.Create(path)
	if err != nil {
		return nil, err
	}

	s := &session{deps: deps, path: path}
	writers := []elephantlog.RecordWriter{file}
	if deps.Runs != nil && deps.Records != nil {
		run := &elephantlog.Run{}
		if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
			file.Close()
			return nil, err
		}
		s.run = run
		writers = append(writers, sqlite.NewRecordWriter(deps.Records, run.ID))
	}
	s.writer = elslog.NewLoggingRecordWriter(pipeline.NewMultiWriter(writers...), deps.logger())
	return s, nil
}

// finish closes the writers and stores the run tally. It runs even after
// cancellation so an interrupted run keeps its partial results.
func (s *session) finish(summary *elephantlog.Summary) error {
	closeErr := s.writer.Close()
	if s.run == nil || summary == nil {
		return closeErr
	}
	ctx := context.WithoutCancel(s.deps.Ctx)
	if err := s.deps.Runs.FinishRun(ctx, s.run.ID, summary); err != nil {
		s.deps.logger().Error("failed to finish run", "run", s.run.ID, "err", err)
		if closeErr == nil {
			return err
		}
	}
	return closeErr
}
