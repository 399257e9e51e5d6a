package readability_test

import (
	"testing"

	"github.com/fwojciec/sift"
	"github.com/fwojciec/sift/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().Extract("")

		require.Error(t, err)
		assert.Equal(t, sift.EINVALID, sift.ErrorCode(err))
	})

	t.Run("extracts title and article body", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Field Guide</title></head><body>
<div class="menu"><a href="/">Home</a></div>
<article>
<h1>Field Guide</h1>
<p>Owls hunt at night and rely on their hearing far more than on their eyesight to locate prey.</p>
<p>Their feathers are shaped to muffle sound, which lets them approach without being noticed.</p>
</article>
</body></html>`

		ext := readability.NewExtractor(readability.WithPageURL("https://example.com/guide"))
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Field Guide", result.Title)
		assert.Contains(t, result.ContentHTML, "muffle sound")
	})
}
