package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"syscall"
	"time"

	"github.com/fwojciec/sift"
)

// Fetch defaults.
const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultUserAgent    = "sift/1.0 (+https://github.com/fwojciec/sift)"
	DefaultMaxBodyBytes = 10 << 20
	maxRedirects        = 10
)

// Ensure Fetcher implements sift.Fetcher at compile time.
var _ sift.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw HTML with a plain GET request. JavaScript is not
// executed. Connections to loopback, private and link-local addresses are
// refused after DNS resolution, and every redirect target is checked with
// sift.NormalizeURL.
type Fetcher struct {
	client        *http.Client
	timeout       time.Duration
	userAgent     string
	maxBytes      int64
	allowInternal bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodyBytes caps how much of a response body is read.
func WithMaxBodyBytes(n int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// WithInternalAddresses permits connections to internal addresses. It is
// meant for tests against local servers; redirect targets are still checked.
func WithInternalAddresses() FetcherOption {
	return func(f *Fetcher) {
		f.allowInternal = true
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	dialer := &net.Dialer{Timeout: f.timeout}
	if !f.allowInternal {
		dialer.Control = denyInternal
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// A proxy would be dialed in place of the target.
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	f.client = &http.Client{
		Timeout:       f.timeout,
		Transport:     transport,
		CheckRedirect: checkRedirect,
	}
	return f
}

// denyInternal is a net.Dialer control hook. It sees the resolved address,
// so names pointing at internal networks are caught too.
func denyInternal(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return err
	}
	if sift.IsInternalAddr(addr) {
		return sift.Errorf(sift.EINVALID, "URL resolves to a disallowed address: %s", addr)
	}
	return nil
}

func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	_, err := sift.NormalizeURL(req.URL.String())
	return err
}

// Fetch returns the body of url. Non-2xx responses are provider failures.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", sift.Errorf(sift.EINVALID, "Invalid URL: %s", url)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		var e *sift.Error
		if errors.As(err, &e) {
			return "", e
		}
		return "", &sift.ProviderError{
			StatusCode: http.StatusBadGateway,
			Message:    "Failed to fetch page",
			Err:        err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &sift.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Request failed with status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", &sift.ProviderError{
			StatusCode: http.StatusBadGateway,
			Message:    "Failed to fetch page",
			Err:        err,
		}
	}
	return string(body), nil
}

// Close is a no-op; http.Client needs no cleanup.
func (f *Fetcher) Close() error {
	return nil
}
