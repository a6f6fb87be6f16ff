package pipeline

import (
	"errors"
	"strings"

	"github.com/fwojciec/elephantlog"
)

var _ elephantlog.Extractor = (*ChainExtractor)(nil)

// ChainExtractor tries extractors in order. The first result with content
// wins; its empty metadata fields are filled from the other results.
type ChainExtractor struct {
	Extractors []elephantlog.Extractor
}

// NewChainExtractor returns a ChainExtractor over extractors.
func NewChainExtractor(extractors ...elephantlog.Extractor) *ChainExtractor {
	return &ChainExtractor{Extractors: extractors}
}

// Extract returns the first result with non-empty content.
// Returns an EPARSE error when no extractor yields content.
func (c *ChainExtractor) Extract(html string) (*elephantlog.ExtractResult, error) {
	var results []*elephantlog.ExtractResult
	var errs []error
	var winner *elephantlog.ExtractResult

	for _, e := range c.Extractors {
		r, err := e.Extract(html)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if r == nil {
			continue
		}
		results = append(results, r)
		if winner == nil && strings.TrimSpace(r.ContentHTML) != "" {
			winner = r
		}
	}

	if winner == nil {
		if err := errors.Join(errs...); err != nil {
			return nil, elephantlog.Errorf(elephantlog.EPARSE, "no extractor found content: %v", err)
		}
		return nil, elephantlog.Errorf(elephantlog.EPARSE, "no extractor found content")
	}

	out := *winner
	for _, r := range results {
		if out.Title == "" {
			out.Title = r.Title
		}
		if out.Published == "" {
			out.Published = r.Published
		}
		if out.SiteName == "" {
			out.SiteName = r.SiteName
		}
	}
	return &out, nil
}
