package mock

import (
	"context"

	"github.com/fwojciec/sift"
)

// Compile-time interface verification.
var (
	_ sift.PageFetcher = (*PageFetcher)(nil)
	_ sift.PageScraper = (*PageScraper)(nil)
)

// PageFetcher is a mock implementation of sift.PageFetcher.
type PageFetcher struct {
	FetchPageFn func(ctx context.Context, url string) (*sift.FetchedPage, error)
}

func (f *PageFetcher) FetchPage(ctx context.Context, url string) (*sift.FetchedPage, error) {
	return f.FetchPageFn(ctx, url)
}

// PageScraper is a mock implementation of sift.PageScraper.
type PageScraper struct {
	ScrapeFn func(ctx context.Context, rawURL string) (*sift.PageResult, error)
}

func (s *PageScraper) Scrape(ctx context.Context, rawURL string) (*sift.PageResult, error) {
	return s.ScrapeFn(ctx, rawURL)
}
