package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/sift"
)

// Ensure DirectFetcher implements sift.PageFetcher at compile time.
var _ sift.PageFetcher = (*DirectFetcher)(nil)

// DirectFetcher builds a FetchedPage from a plain HTTP request instead of a
// hosted scraping API. Markdown is produced from the page's main content.
// Links are left nil so the structure extractor scans anchors itself.
type DirectFetcher struct {
	Fetcher   sift.Fetcher
	Limiter   sift.DomainLimiter
	Metadata  sift.MetadataReader
	Extractor sift.Extractor
	Converter sift.Converter
}

// FetchPage fetches rawURL and assembles its HTML, markdown and metadata.
func (d *DirectFetcher) FetchPage(ctx context.Context, rawURL string) (*sift.FetchedPage, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, sift.Errorf(sift.EINVALID, "Invalid URL: %s", rawURL)
	}

	if d.Limiter != nil {
		if err := d.Limiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, err
		}
	}

	body, err := d.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	page := &sift.FetchedPage{HTML: body}

	if d.Metadata != nil {
		meta, err := d.Metadata.ReadMetadata(body)
		if err != nil {
			return nil, fmt.Errorf("read metadata: %w", err)
		}
		page.Metadata = meta
	}
	page.Metadata.SourceURL = rawURL

	content := body
	if d.Extractor != nil {
		// Pages the extractor cannot reduce are converted whole.
		if res, err := d.Extractor.Extract(body); err == nil && res.ContentHTML != "" {
			content = res.ContentHTML
			if page.Metadata.Title == "" {
				page.Metadata.Title = res.Title
			}
		}
	}

	if d.Converter != nil && strings.TrimSpace(content) != "" {
		md, err := d.Converter.Convert(content)
		if err != nil {
			return nil, fmt.Errorf("convert to markdown: %w", err)
		}
		page.Markdown = md
	}

	return page, nil
}
