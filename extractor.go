package sift

// ExtractResult holds the main content recovered from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with navigation,
	// footers and sidebars removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// MetadataReader reads descriptive metadata from raw HTML.
type MetadataReader interface {
	// ReadMetadata returns the page title, meta description and
	// og:description. Missing values are empty strings.
	ReadMetadata(html string) (PageMetadata, error)
}

// PageExtractor reduces a fetched page to its structured outline.
// It never fails; unparseable input yields empty sequences.
type PageExtractor interface {
	ExtractPage(page *FetchedPage) *PageExtraction
}
