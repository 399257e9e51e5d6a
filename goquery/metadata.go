// Package goquery reads page metadata using goquery selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sift"
)

// Ensure MetadataReader implements sift.MetadataReader at compile time.
var _ sift.MetadataReader = (*MetadataReader)(nil)

// MetadataReader extracts the title, meta description and og:description
// of an HTML document.
type MetadataReader struct{}

// NewMetadataReader creates a new MetadataReader.
func NewMetadataReader() *MetadataReader {
	return &MetadataReader{}
}

// ReadMetadata parses html and returns its descriptive metadata. The first
// non-empty value wins when a tag repeats.
func (m *MetadataReader) ReadMetadata(html string) (sift.PageMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return sift.PageMetadata{}, sift.Errorf(sift.EINVALID, "failed to parse HTML: %v", err)
	}

	meta := sift.PageMetadata{
		Title: strings.TrimSpace(doc.Find("head title").First().Text()),
	}
	if meta.Title == "" {
		meta.Title = metaContent(doc, `meta[property="og:title"]`)
	}
	meta.Description = metaContent(doc, `meta[name="description"], meta[name="Description"]`)
	meta.OGDescription = metaContent(doc, `meta[property="og:description"], meta[name="og:description"]`)
	return meta, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	var out string
	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		out = strings.TrimSpace(sel.AttrOr("content", ""))
		return out == ""
	})
	return out
}
