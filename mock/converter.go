package mock

import "github.com/fwojciec/brief"

var _ brief.Converter = (*Converter)(nil)

// Converter is a mock implementation of brief.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
