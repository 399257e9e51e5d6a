package mock

import "github.com/fwojciec/sift"

// Compile-time interface verification.
var (
	_ sift.Extractor      = (*Extractor)(nil)
	_ sift.MetadataReader = (*MetadataReader)(nil)
	_ sift.PageExtractor  = (*PageExtractor)(nil)
)

// Extractor is a mock implementation of sift.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*sift.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*sift.ExtractResult, error) {
	return e.ExtractFn(html)
}

// MetadataReader is a mock implementation of sift.MetadataReader.
type MetadataReader struct {
	ReadMetadataFn func(html string) (sift.PageMetadata, error)
}

func (m *MetadataReader) ReadMetadata(html string) (sift.PageMetadata, error) {
	return m.ReadMetadataFn(html)
}

// PageExtractor is a mock implementation of sift.PageExtractor.
type PageExtractor struct {
	ExtractPageFn func(page *sift.FetchedPage) *sift.PageExtraction
}

func (e *PageExtractor) ExtractPage(page *sift.FetchedPage) *sift.PageExtraction {
	return e.ExtractPageFn(page)
}
