package sift

import (
	"net/netip"
	"net/url"
	"strings"
)

// NormalizeURL trims raw, adds an https:// scheme when none is given and
// checks that the result is safe to fetch. It returns EINVALID for empty,
// unparseable or non-HTTP URLs and for hosts on local or private networks.
//
// Only literal hosts are checked here. Fetchers that resolve names apply
// IsInternalAddr to each address they connect to.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "URL is required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "Invalid URL: %s", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "Unsupported URL scheme: %s", u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return "", Errorf(EINVALID, "Invalid URL: %s", raw)
	}
	if isInternalHost(host) {
		return "", Errorf(EINVALID, "URL host %s is not allowed", host)
	}
	return u.String(), nil
}

func isInternalHost(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "localhost" || strings.HasSuffix(host, ".localhost") || strings.HasSuffix(host, ".local") {
		return true
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	return IsInternalAddr(addr)
}

// IsInternalAddr reports whether addr is loopback, private, link-local or
// unspecified.
func IsInternalAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsUnspecified()
}
