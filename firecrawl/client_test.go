package firecrawl_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/sift"
	"github.com/fwojciec/sift/firecrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchPage(t *testing.T) {
	t.Parallel()

	t.Run("sends scrape request and decodes page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/scrape", r.URL.Path)
			assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "https://example.com", body["url"])
			assert.Equal(t, []any{"markdown", "html", "links"}, body["formats"])
			assert.Equal(t, false, body["onlyMainContent"])

			w.Header().Set("X-RateLimit-Remaining", "42")
			_, _ = w.Write([]byte(`{"success":true,"data":{
				"html":"<h1>Hi</h1>",
				"markdown":"# Hi",
				"links":["https://example.com/a"],
				"metadata":{"title":"Hi","description":"Desc","ogDescription":"OG"}
			}}`))
		}))
		defer server.Close()

		client := firecrawl.NewClient("key-123", firecrawl.WithBaseURL(server.URL))

		page, err := client.FetchPage(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "<h1>Hi</h1>", page.HTML)
		assert.Equal(t, "# Hi", page.Markdown)
		assert.Equal(t, []string{"https://example.com/a"}, page.Links)
		assert.Equal(t, "Hi", page.Metadata.Title)
		assert.Equal(t, "Desc", page.Metadata.Description)
		assert.Equal(t, "OG", page.Metadata.OGDescription)
		assert.Equal(t, "https://example.com", page.Metadata.SourceURL)
		require.NotNil(t, page.Remaining)
		assert.Equal(t, 42, *page.Remaining)
	})

	t.Run("leaves links nil when provider omits them", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"html":"<a href=\"/x\">X</a>","markdown":"X"}`))
		}))
		defer server.Close()

		client := firecrawl.NewClient("key", firecrawl.WithBaseURL(server.URL))

		page, err := client.FetchPage(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Nil(t, page.Links)
		assert.Equal(t, "<a href=\"/x\">X</a>", page.HTML)
		assert.Nil(t, page.Remaining)
	})

	t.Run("forwards provider error message", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"success":false,"error":"Insufficient credits"}`))
		}))
		defer server.Close()

		client := firecrawl.NewClient("key", firecrawl.WithBaseURL(server.URL))

		_, err := client.FetchPage(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.Equal(t, sift.EPROVIDER, sift.ErrorCode(err))
		assert.Equal(t, "Insufficient credits", sift.ErrorMessage(err))

		var pe *sift.ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, http.StatusPaymentRequired, pe.StatusCode)
	})

	t.Run("reports status when error body is not JSON", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		}))
		defer server.Close()

		client := firecrawl.NewClient("key", firecrawl.WithBaseURL(server.URL))

		_, err := client.FetchPage(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.Equal(t, "Request failed with status 502", sift.ErrorMessage(err))
	})

	t.Run("requires api key before any request", func(t *testing.T) {
		t.Parallel()

		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := firecrawl.NewClient("", firecrawl.WithBaseURL(server.URL))

		_, err := client.FetchPage(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.Equal(t, sift.ECONFIG, sift.ErrorCode(err))
		assert.Equal(t, "Firecrawl connector not configured", sift.ErrorMessage(err))
		assert.False(t, called)
	})

	t.Run("reports unreachable api as scrape failure", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		base := "http://" + ln.Addr().String()
		require.NoError(t, ln.Close())

		client := firecrawl.NewClient("key", firecrawl.WithBaseURL(base))

		_, err = client.FetchPage(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.Equal(t, sift.EPROVIDER, sift.ErrorCode(err))
		assert.Equal(t, "Failed to scrape: could not reach Firecrawl", sift.ErrorMessage(err))
	})
}
