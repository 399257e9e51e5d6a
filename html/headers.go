package html

import (
	"strings"

	"github.com/fwojciec/sift"
	xhtml "golang.org/x/net/html"
)

var headerLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// extractHeaders pairs each <hN> with the next </hN> of the same level.
// Header tags opened inside an open header are treated as inline markup,
// and a header still open at end of input is dropped.
func extractHeaders(tokens []token) []sift.Header {
	headers := []sift.Header{}
	open := 0
	var text strings.Builder

	for _, t := range tokens {
		switch t.kind {
		case xhtml.StartTagToken:
			if level, ok := headerLevels[t.tag]; ok && open == 0 {
				open = level
				text.Reset()
			}
		case xhtml.EndTagToken:
			if level, ok := headerLevels[t.tag]; ok && level == open {
				if s := collapse(text.String()); s != "" {
					headers = append(headers, sift.Header{Level: level, Text: s})
				}
				open = 0
			}
		case xhtml.TextToken:
			if open != 0 {
				text.WriteString(t.text)
			}
		}
	}
	return headers
}
