package html

import (
	"strings"

	"github.com/fwojciec/sift"
	xhtml "golang.org/x/net/html"
)

// extractLinks scans <a href> elements in document order. Only anchors that
// are closed produce a link; an <a> opened inside another is ignored.
func extractLinks(tokens []token) []sift.Link {
	links := []sift.Link{}
	var (
		href     string
		inAnchor bool
		text     strings.Builder
	)

	for _, t := range tokens {
		switch {
		case t.kind == xhtml.StartTagToken && t.tag == "a":
			if inAnchor {
				continue
			}
			if href = t.attr("href"); href != "" {
				inAnchor = true
				text.Reset()
			}
		case t.isClose("a"):
			if !inAnchor {
				continue
			}
			inAnchor = false
			if !sift.IsExcludedLink(href) {
				links = append(links, sift.Link{URL: href, Text: collapse(text.String())})
			}
		case t.kind == xhtml.TextToken:
			if inAnchor {
				text.WriteString(t.text)
			}
		}
	}
	return links
}

// linksFromList converts a fetcher-supplied link list. Entries carry no
// anchor text.
func linksFromList(urls []string) []sift.Link {
	links := make([]sift.Link, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || sift.IsExcludedLink(u) {
			continue
		}
		links = append(links, sift.Link{URL: u})
	}
	return links
}
