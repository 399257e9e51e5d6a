package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/sift"
	"github.com/fwojciec/sift/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const article = `<!DOCTYPE html>
<html>
<head><title>Release Notes - Example</title></head>
<body>
<nav class="main-nav"><a href="/">Home</a><a href="/blog">Blog</a></nav>
<article>
<h1>Release Notes</h1>
<p>This release brings faster page extraction and a reworked history view for every user.</p>
<p>Existing scrape jobs are migrated automatically the first time the service starts.</p>
</article>
<footer><p>Copyright 2025 Example Corp</p></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and main content", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(article)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.ContentHTML, "faster page extraction")
		assert.NotContains(t, result.ContentHTML, "main-nav")
		assert.NotContains(t, result.ContentHTML, "Copyright 2025 Example Corp")
	})

	t.Run("works without fallback extractors", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor(trafilatura.WithFallback(false)).Extract(article)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "migrated automatically")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("  ")

		require.Error(t, err)
		assert.Equal(t, sift.EINVALID, sift.ErrorCode(err))
	})
}
