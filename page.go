package sift

import (
	"context"
	"strings"
)

// Resource types recognized by the page extractor.
const (
	ResourceScript     = "script"
	ResourceStylesheet = "stylesheet"
	ResourceFont       = "font"
	ResourceIcon       = "icon"
	ResourceManifest   = "manifest"
	ResourceOther      = "other"
)

// Header is a heading (h1..h6) found in a page.
type Header struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Validate returns an error if the header is out of range or empty.
func (h Header) Validate() error {
	if h.Level < 1 || h.Level > 6 {
		return Errorf(EINVALID, "header level %d out of range", h.Level)
	}
	if strings.TrimSpace(h.Text) == "" {
		return Errorf(EINVALID, "header text required")
	}
	return nil
}

// Link is an anchor target found in a page.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Validate returns an error if the link points nowhere useful.
func (l Link) Validate() error {
	if l.URL == "" {
		return Errorf(EINVALID, "link URL required")
	}
	if IsExcludedLink(l.URL) {
		return Errorf(EINVALID, "link %q is not navigable", l.URL)
	}
	return nil
}

// IsExcludedLink reports whether href is fragment-only or uses the
// javascript: pseudo-protocol.
func IsExcludedLink(href string) bool {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "#") {
		return true
	}
	return strings.HasPrefix(strings.ToLower(href), "javascript:")
}

// Image is an <img> reference found in a page.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Validate returns an error if the image has no source or is inlined.
func (i Image) Validate() error {
	if i.Src == "" {
		return Errorf(EINVALID, "image src required")
	}
	if IsDataURI(i.Src) {
		return Errorf(EINVALID, "inline data image not allowed")
	}
	return nil
}

// IsDataURI reports whether src is an inline data: URI.
func IsDataURI(src string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(src)), "data:")
}

// Resource is an external script, stylesheet, font, icon or manifest
// referenced by a page.
type Resource struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Validate returns an error if the resource is malformed.
func (r Resource) Validate() error {
	switch r.Type {
	case ResourceScript, ResourceStylesheet, ResourceFont, ResourceIcon, ResourceManifest, ResourceOther:
	default:
		return Errorf(EINVALID, "unknown resource type %q", r.Type)
	}
	if r.URL == "" {
		return Errorf(EINVALID, "resource URL required")
	}
	return nil
}

// PageExtraction is the structured outline of a single page.
type PageExtraction struct {
	Summary   string     `json:"summary"`
	Headers   []Header   `json:"headers"`
	Links     []Link     `json:"links"`
	Images    []Image    `json:"images"`
	Resources []Resource `json:"resources"`
}

// Validate checks every entity and the uniqueness of images and resources.
func (p *PageExtraction) Validate() error {
	for _, h := range p.Headers {
		if err := h.Validate(); err != nil {
			return err
		}
	}
	for _, l := range p.Links {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(p.Images))
	for _, img := range p.Images {
		if err := img.Validate(); err != nil {
			return err
		}
		if seen[img.Src] {
			return Errorf(EINVALID, "duplicate image %q", img.Src)
		}
		seen[img.Src] = true
	}
	seen = make(map[string]bool, len(p.Resources))
	for _, r := range p.Resources {
		if err := r.Validate(); err != nil {
			return err
		}
		if seen[r.URL] {
			return Errorf(EINVALID, "duplicate resource %q", r.URL)
		}
		seen[r.URL] = true
	}
	return nil
}

// PageMetadata holds the descriptive metadata reported for a page.
type PageMetadata struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	OGDescription string `json:"ogDescription"`
	SourceURL     string `json:"sourceURL"`
}

// FetchedPage is what a PageFetcher returns for a URL.
type FetchedPage struct {
	HTML     string
	Markdown string

	// Links is the fetcher's own list of link targets. A nil slice means the
	// fetcher did not provide one and links are scanned from HTML instead.
	Links []string

	Metadata PageMetadata

	// Remaining is the provider's reported request quota, when known.
	Remaining *int
}

// PageFetcher retrieves a page as HTML, markdown and metadata.
// Implementations hide whether a hosted scraping API or a direct HTTP
// request is used.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (*FetchedPage, error)
}

// PageResult is the outcome of scraping a single URL.
type PageResult struct {
	JobID string `json:"job_id"`
	PageExtraction
	Metadata  PageMetadata `json:"metadata"`
	Remaining *int         `json:"remaining,omitempty"`
}
