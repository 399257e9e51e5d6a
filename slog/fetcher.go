package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sift"
)

var (
	_ sift.Fetcher     = (*LoggingFetcher)(nil)
	_ sift.PageFetcher = (*LoggingPageFetcher)(nil)
)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   sift.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next sift.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingPageFetcher wraps a PageFetcher with logging.
type LoggingPageFetcher struct {
	next   sift.PageFetcher
	logger *slog.Logger
}

// NewLoggingPageFetcher creates a new LoggingPageFetcher.
func NewLoggingPageFetcher(next sift.PageFetcher, logger *slog.Logger) *LoggingPageFetcher {
	return &LoggingPageFetcher{next: next, logger: logger}
}

// FetchPage delegates to the wrapped fetcher and logs the page size, the
// provider quota when reported, and any failure.
func (f *LoggingPageFetcher) FetchPage(ctx context.Context, url string) (page *sift.FetchedPage, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin)}
		if err != nil {
			f.logger.Warn("page fetch failed", append(attrs, "err", err)...)
			return
		}
		attrs = append(attrs, "html_bytes", len(page.HTML), "markdown_bytes", len(page.Markdown))
		if page.Remaining != nil {
			attrs = append(attrs, "remaining", *page.Remaining)
		}
		f.logger.Info("page fetch", attrs...)
	}(time.Now())
	return f.next.FetchPage(ctx, url)
}
