package html

import (
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/sift"
)

// extractImages returns every <img> with a usable src in document order.
// Attribute order in the source is irrelevant.
func extractImages(tokens []token) []sift.Image {
	var images []sift.Image
	for _, t := range tokens {
		if !t.isOpen("img") {
			continue
		}
		src := t.attr("src")
		if src == "" || sift.IsDataURI(src) {
			continue
		}
		images = append(images, sift.Image{Src: src, Alt: t.attrs["alt"]})
	}
	return images
}

// dedupImages keeps the first image seen for each src.
func dedupImages(images []sift.Image) []sift.Image {
	out := make([]sift.Image, 0, len(images))
	seen := make(map[string]bool, len(images))
	for _, img := range images {
		if seen[img.Src] {
			continue
		}
		seen[img.Src] = true
		out = append(out, img)
	}
	return out
}

// extractResources collects script sources first, then <link> references.
func extractResources(tokens []token) []sift.Resource {
	var resources []sift.Resource
	for _, t := range tokens {
		if !t.isOpen("script") {
			continue
		}
		if src := t.attr("src"); src != "" {
			resources = append(resources, sift.Resource{Type: sift.ResourceScript, URL: src})
		}
	}
	for _, t := range tokens {
		if !t.isOpen("link") {
			continue
		}
		href := t.attr("href")
		if href == "" {
			continue
		}
		if typ := classifyLink(t.attr("rel"), t.attr("as"), href); typ != "" {
			resources = append(resources, sift.Resource{Type: typ, URL: href})
		}
	}
	return resources
}

// classifyLink maps a <link> tag to a resource type. Relations that do not
// load anything (canonical, alternate, preconnect) return "".
func classifyLink(rel, as, href string) string {
	rels := strings.Fields(strings.ToLower(rel))
	has := func(want string) bool {
		for _, r := range rels {
			if r == want {
				return true
			}
		}
		return false
	}

	switch {
	case has("stylesheet"):
		return sift.ResourceStylesheet
	case has("manifest"):
		return sift.ResourceManifest
	}
	for _, r := range rels {
		if strings.Contains(r, "icon") {
			return sift.ResourceIcon
		}
	}
	if has("preload") || has("prefetch") || has("modulepreload") {
		switch strings.ToLower(as) {
		case "font":
			return sift.ResourceFont
		case "style":
			return sift.ResourceStylesheet
		case "script":
			return sift.ResourceScript
		}
		if has("modulepreload") {
			return sift.ResourceScript
		}
		if isFontFile(href) {
			return sift.ResourceFont
		}
		return sift.ResourceOther
	}
	return ""
}

var fontExtensions = map[string]bool{
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
}

func isFontFile(href string) bool {
	p := href
	if u, err := url.Parse(href); err == nil {
		p = u.Path
	}
	return fontExtensions[strings.ToLower(path.Ext(p))]
}

// dedupResources keeps the first resource seen for each URL.
func dedupResources(resources []sift.Resource) []sift.Resource {
	out := make([]sift.Resource, 0, len(resources))
	seen := make(map[string]bool, len(resources))
	for _, r := range resources {
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		out = append(out, r)
	}
	return out
}
