package mock

import "github.com/fwojciec/elephantlog"

var _ elephantlog.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of elephantlog.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*elephantlog.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*elephantlog.ExtractResult, error) {
	return e.ExtractFn(html)
}
