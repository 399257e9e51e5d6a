// Package html implements sift.PageExtractor on top of the
// golang.org/x/net/html tokenizer. Each entity kind is recovered by its own
// rule over a single token stream, so malformed or truncated markup degrades
// to fewer matches instead of an error.
package html

import (
	"strings"

	"github.com/fwojciec/sift"
	xhtml "golang.org/x/net/html"
)

// Ensure Extractor implements sift.PageExtractor at compile time.
var _ sift.PageExtractor = (*Extractor)(nil)

// Extractor recovers headers, links, images, resources and a summary from
// a fetched page.
type Extractor struct {
	summaryLimit int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSummaryLimit sets how many characters of markdown are used when the
// summary falls back to page content. Defaults to DefaultSummaryLimit.
func WithSummaryLimit(n int) Option {
	return func(e *Extractor) {
		e.summaryLimit = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{summaryLimit: DefaultSummaryLimit}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractPage builds the page outline. Sequences are never nil.
func (e *Extractor) ExtractPage(page *sift.FetchedPage) *sift.PageExtraction {
	if page == nil {
		page = &sift.FetchedPage{}
	}
	tokens := tokenize(page.HTML)

	links := linksFromList(page.Links)
	if page.Links == nil {
		links = extractLinks(tokens)
	}

	return &sift.PageExtraction{
		Summary:   summarize(page.Metadata, page.Markdown, e.summaryLimit),
		Headers:   extractHeaders(tokens),
		Links:     links,
		Images:    dedupImages(extractImages(tokens)),
		Resources: dedupResources(extractResources(tokens)),
	}
}

// token is the subset of a tokenizer token the rules look at.
type token struct {
	kind  xhtml.TokenType
	tag   string
	attrs map[string]string
	text  string
}

// attr returns the trimmed value of the named attribute.
func (t token) attr(name string) string {
	return strings.TrimSpace(t.attrs[name])
}

// isOpen reports whether t opens tag, including self-closing forms.
func (t token) isOpen(tag string) bool {
	return (t.kind == xhtml.StartTagToken || t.kind == xhtml.SelfClosingTagToken) && t.tag == tag
}

// isClose reports whether t closes tag.
func (t token) isClose(tag string) bool {
	return t.kind == xhtml.EndTagToken && t.tag == tag
}

// tokenize runs the tokenizer to EOF. Tag and attribute names come back
// lower-cased and entity references in text and attribute values are
// decoded. When an attribute repeats, the first occurrence wins.
//
// The tokenizer hands back <noscript> content as raw text; it is tokenized
// again so fallback images and links are seen.
func tokenize(src string) []token {
	var tokens []token
	z := xhtml.NewTokenizer(strings.NewReader(src))
	inNoscript := false
	for {
		tt := z.Next()
		if tt == xhtml.ErrorToken {
			// io.EOF, or a read error a string reader never produces.
			return tokens
		}

		t := z.Token()
		raw := inNoscript
		inNoscript = false
		switch tt {
		case xhtml.TextToken:
			if raw {
				tokens = append(tokens, tokenize(t.Data)...)
				continue
			}
			tokens = append(tokens, token{kind: tt, text: t.Data})
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken, xhtml.EndTagToken:
			tok := token{kind: tt, tag: t.Data}
			if len(t.Attr) > 0 {
				tok.attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					if _, ok := tok.attrs[a.Key]; !ok {
						tok.attrs[a.Key] = a.Val
					}
				}
			}
			tokens = append(tokens, tok)
			inNoscript = tt == xhtml.StartTagToken && t.Data == "noscript"
		}
	}
}

// collapse trims s and folds internal whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
