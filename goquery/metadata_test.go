package goquery_test

import (
	"testing"

	"github.com/fwojciec/sift/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataReader_ReadMetadata(t *testing.T) {
	t.Parallel()

	t.Run("reads title and descriptions", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<title> Example Domain </title>
			<meta name="description" content="Plain description">
			<meta property="og:description" content="Open Graph description">
		</head><body></body></html>`

		meta, err := goquery.NewMetadataReader().ReadMetadata(html)
		require.NoError(t, err)
		assert.Equal(t, "Example Domain", meta.Title)
		assert.Equal(t, "Plain description", meta.Description)
		assert.Equal(t, "Open Graph description", meta.OGDescription)
	})

	t.Run("skips empty content and falls back to og title", func(t *testing.T) {
		t.Parallel()

		html := `<head>
			<meta property="og:title" content="OG Title">
			<meta name="description" content="">
			<meta name="description" content="Second">
		</head>`

		meta, err := goquery.NewMetadataReader().ReadMetadata(html)
		require.NoError(t, err)
		assert.Equal(t, "OG Title", meta.Title)
		assert.Equal(t, "Second", meta.Description)
		assert.Empty(t, meta.OGDescription)
	})

	t.Run("ignores title elements outside head", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><svg><title>icon</title></svg></body></html>`

		meta, err := goquery.NewMetadataReader().ReadMetadata(html)
		require.NoError(t, err)
		assert.Empty(t, meta.Title)
	})
}
