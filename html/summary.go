package html

import (
	"strings"

	"github.com/fwojciec/sift"
)

// DefaultSummaryLimit is the number of markdown characters used for a
// content-derived summary.
const DefaultSummaryLimit = 500

var markdownPunct = strings.NewReplacer("#", "", "*", "", "_", "", "[", "", "]", "")

// summarize picks exactly one source: the meta description, then the
// og:description, then the start of the markdown body.
func summarize(meta sift.PageMetadata, markdown string, limit int) string {
	if meta.Description != "" {
		return meta.Description
	}
	if meta.OGDescription != "" {
		return meta.OGDescription
	}

	runes := []rune(markdown)
	if limit > 0 && len(runes) > limit {
		runes = runes[:limit]
	}
	text := strings.TrimSpace(markdownPunct.Replace(string(runes)))
	if text == "" {
		return ""
	}
	return text + "..."
}
