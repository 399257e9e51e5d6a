package scrape

import (
	"context"
	"sync"

	"github.com/fwojciec/sift"
	"golang.org/x/time/rate"
)

var _ sift.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out direct requests to the same host using one token
// bucket per domain. Requests to different hosts do not wait on each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each domain with the given burst. A burst below 1 is treated as 1.
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	if burst < 1 {
		burst = 1
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiter(domain).Wait(ctx)
}

func (d *DomainLimiter) limiter(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.limiters[domain]
	if !ok {
		l = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[domain] = l
	}
	return l
}
