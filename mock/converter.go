package mock

import "github.com/fwojciec/sift"

var _ sift.Converter = (*Converter)(nil)

// Converter is a mock implementation of sift.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
