// Package trafilatura implements sift.Extractor with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/sift"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sift.Extractor at compile time.
var _ sift.Extractor = (*Extractor)(nil)

// Extractor isolates the main content of a page, dropping navigation,
// footers and sidebars.
type Extractor struct {
	opts trafilatura.Options
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallback toggles the readability and dom-distiller fallbacks
// trafilatura uses when its own heuristics find little content.
// Enabled by default.
func WithFallback(enabled bool) Option {
	return func(e *Extractor) {
		e.opts.EnableFallback = enabled
	}
}

// NewExtractor creates a new Extractor. Links and images are kept in the
// content so downstream markdown keeps them.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
			IncludeLinks:   true,
			IncludeImages:  true,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the page title and main content HTML.
func (e *Extractor) Extract(rawHTML string) (*sift.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sift.Errorf(sift.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	out := &sift.ExtractResult{Title: result.Metadata.Title}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		out.ContentHTML = buf.String()
	}
	return out, nil
}
