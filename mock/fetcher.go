package mock

import (
	"context"

	"github.com/fwojciec/sift"
)

// Compile-time interface verification.
var (
	_ sift.Fetcher       = (*Fetcher)(nil)
	_ sift.DomainLimiter = (*DomainLimiter)(nil)
)

// Fetcher is a mock implementation of sift.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// DomainLimiter is a mock implementation of sift.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
