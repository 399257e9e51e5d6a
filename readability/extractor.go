// Package readability implements sift.Extractor with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sift"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements sift.Extractor at compile time.
var _ sift.Extractor = (*Extractor)(nil)

// Extractor isolates the main content of a page using Mozilla's
// readability algorithm.
type Extractor struct {
	pageURL *url.URL
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPageURL sets the URL relative links in the content resolve against.
// Invalid URLs are ignored.
func WithPageURL(raw string) Option {
	return func(e *Extractor) {
		if u, err := url.Parse(raw); err == nil {
			e.pageURL = u
		}
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the article title and content HTML.
func (e *Extractor) Extract(rawHTML string) (*sift.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sift.Errorf(sift.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, err
	}

	return &sift.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
