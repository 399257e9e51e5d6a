package apify_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/sift"
	"github.com/fwojciec/sift/apify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_RunActor(t *testing.T) {
	t.Parallel()

	t.Run("posts input and returns dataset id", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v2/acts/clockworks~tiktok-hashtag-scraper/runs", r.URL.Path)
			assert.Equal(t, "tok", r.URL.Query().Get("token"))
			assert.Equal(t, "120", r.URL.Query().Get("waitForFinish"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"hashtags":["cats"],"resultsPerPage":5}`, string(body))

			_, _ = w.Write([]byte(`{"data":{"id":"run1","status":"SUCCEEDED","defaultDatasetId":"ds1"}}`))
		}))
		defer server.Close()

		client := apify.NewClient("tok", apify.WithBaseURL(server.URL))

		id, err := client.RunActor(context.Background(), "clockworks/tiktok-hashtag-scraper",
			map[string]any{"hashtags": []string{"cats"}, "resultsPerPage": 5}, 120)
		require.NoError(t, err)
		assert.Equal(t, "ds1", id)
	})

	t.Run("reports failed run with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`actor not found`))
		}))
		defer server.Close()

		client := apify.NewClient("tok", apify.WithBaseURL(server.URL))

		_, err := client.RunActor(context.Background(), "a/b", map[string]any{}, 120)
		require.Error(t, err)
		assert.Equal(t, sift.EPROVIDER, sift.ErrorCode(err))
		assert.Equal(t, "Apify run failed (404): actor not found", sift.ErrorMessage(err))
	})

	t.Run("reports missing dataset", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"id":"run1"}}`))
		}))
		defer server.Close()

		client := apify.NewClient("tok", apify.WithBaseURL(server.URL))

		_, err := client.RunActor(context.Background(), "a/b", map[string]any{}, 120)
		require.Error(t, err)
		assert.Equal(t, "No dataset returned from Apify run", sift.ErrorMessage(err))
	})

	t.Run("requires token", func(t *testing.T) {
		t.Parallel()

		client := apify.NewClient("")

		_, err := client.RunActor(context.Background(), "a/b", nil, 120)
		require.Error(t, err)
		assert.Equal(t, sift.ECONFIG, sift.ErrorCode(err))
		assert.Equal(t, "Apify API token not configured", sift.ErrorMessage(err))
	})

	t.Run("reports unreachable api as run failure", func(t *testing.T) {
		t.Parallel()

		client := apify.NewClient("tok", apify.WithBaseURL(closedURL(t)))

		_, err := client.RunActor(context.Background(), "a/b", map[string]any{}, 120)
		require.Error(t, err)
		assert.Equal(t, sift.EPROVIDER, sift.ErrorCode(err))
		assert.Equal(t, "Apify run failed: could not reach Apify", sift.ErrorMessage(err))
		assert.NotContains(t, sift.ErrorMessage(err), "tok")
	})
}

func TestClient_DatasetItems(t *testing.T) {
	t.Parallel()

	t.Run("fetches items with limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v2/datasets/ds1/items", r.URL.Path)
			assert.Equal(t, "7", r.URL.Query().Get("limit"))
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			_, _ = w.Write([]byte(`[{"id":"1"},{"id":"2"}]`))
		}))
		defer server.Close()

		client := apify.NewClient("tok", apify.WithBaseURL(server.URL))

		items, err := client.DatasetItems(context.Background(), "ds1", 7)
		require.NoError(t, err)
		assert.Equal(t, []json.RawMessage{json.RawMessage(`{"id":"1"}`), json.RawMessage(`{"id":"2"}`)}, items)
	})

	t.Run("omits limit when zero", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("limit"))
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := apify.NewClient("tok", apify.WithBaseURL(server.URL))

		items, err := client.DatasetItems(context.Background(), "ds1", 0)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("reports dataset failure status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := apify.NewClient("tok", apify.WithBaseURL(server.URL))

		_, err := client.DatasetItems(context.Background(), "ds1", 5)
		require.Error(t, err)
		assert.Equal(t, "Failed to fetch dataset: 500", sift.ErrorMessage(err))
	})

	t.Run("reports unreachable api as dataset failure", func(t *testing.T) {
		t.Parallel()

		client := apify.NewClient("tok", apify.WithBaseURL(closedURL(t)))

		_, err := client.DatasetItems(context.Background(), "ds1", 5)
		require.Error(t, err)
		assert.Equal(t, sift.EPROVIDER, sift.ErrorCode(err))
		assert.Equal(t, "Failed to fetch dataset: could not reach Apify", sift.ErrorMessage(err))
	})
}

// closedURL returns a base URL on which nothing is listening.
func closedURL(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return "http://" + addr
}
