package mock

import "github.com/fwojciec/elephantlog"

var _ elephantlog.Converter = (*Converter)(nil)

// Converter is a mock implementation of elephantlog.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
