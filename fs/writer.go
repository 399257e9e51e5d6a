// Package fs saves scrape results as JSON files on disk.
package fs

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sift"
)

// ResultPath maps a page URL to a relative file path under its host.
// Example: https://example.com/blog/post → example.com/blog/post.json
func ResultPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", sift.Errorf(sift.EINVALID, "Invalid URL: %s", rawURL)
	}
	host := u.Hostname()
	if host == "" {
		return "", sift.Errorf(sift.EINVALID, "Invalid URL: %s", rawURL)
	}

	p := strings.TrimPrefix(u.Path, "/")
	switch {
	case p == "":
		p = "index"
	case strings.HasSuffix(p, "/"):
		p += "index"
	}

	// Keep the file inside the host directory.
	p = filepath.Clean("/" + filepath.FromSlash(p))
	return filepath.Join(host, p+".json"), nil
}

// Writer stores page results under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteResult saves res as indented JSON at the path derived from its
// source URL and returns that path.
func (w *Writer) WriteResult(res *sift.PageResult) (string, error) {
	if res == nil {
		return "", sift.Errorf(sift.EINVALID, "result required")
	}

	rel, err := ResultPath(res.Metadata.SourceURL)
	if err != nil {
		return "", err
	}
	full := filepath.Join(w.baseDir, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", err
	}
	return full, os.WriteFile(full, append(data, '\n'), 0644)
}
