package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/sift"
	main "github.com/fwojciec/sift/cmd/sift"
	"github.com/fwojciec/sift/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints results in argument order", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageScraper{
			ScrapeFn: func(_ context.Context, rawURL string) (*sift.PageResult, error) {
				return &sift.PageResult{
					JobID:          "job-" + rawURL,
					PageExtraction: sift.PageExtraction{Summary: "summary of " + rawURL},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Pages: pages}

		cmd := &main.ScrapeCmd{URLs: []string{"a.example", "b.example", "c.example"}, Concurrency: 2}
		require.NoError(t, cmd.Run(deps))

		var out []map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		require.Len(t, out, 3)
		for i, u := range cmd.URLs {
			assert.Equal(t, u, out[i]["url"])
			assert.Equal(t, true, out[i]["success"])
			assert.Equal(t, "job-"+u, out[i]["job_id"])
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var active, peak atomic.Int32
		release := make(chan struct{})
		pages := &mock.PageScraper{
			ScrapeFn: func(context.Context, string) (*sift.PageResult, error) {
				n := active.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				<-release
				active.Add(-1)
				return &sift.PageResult{}, nil
			},
		}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Pages: pages}
		cmd := &main.ScrapeCmd{URLs: []string{"a", "b", "c", "d", "e"}, Concurrency: 2}

		done := make(chan error, 1)
		go func() { done <- cmd.Run(deps) }()
		close(release)

		require.NoError(t, <-done)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("reports failures after printing all results", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageScraper{
			ScrapeFn: func(_ context.Context, rawURL string) (*sift.PageResult, error) {
				if rawURL == "bad" {
					return nil, sift.Errorf(sift.EINVALID, "Invalid URL: bad")
				}
				return &sift.PageResult{JobID: "ok"}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Pages: pages}

		err := (&main.ScrapeCmd{URLs: []string{"good", "bad"}, Concurrency: 1}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 pages failed")

		var out []map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		require.Len(t, out, 2)
		assert.Equal(t, true, out[0]["success"])
		assert.Equal(t, false, out[1]["success"])
		assert.Equal(t, "Invalid URL: bad", out[1]["error"])
	})
}

func TestScrapeCmd_RunWritesResults(t *testing.T) {
	t.Parallel()

	pages := &mock.PageScraper{
		ScrapeFn: func(context.Context, string) (*sift.PageResult, error) {
			return &sift.PageResult{
				JobID:    "job-1",
				Metadata: sift.PageMetadata{SourceURL: "https://example.com/pricing"},
			}, nil
		},
	}
	dir := t.TempDir()
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Pages:  pages,
	}

	require.NoError(t, (&main.ScrapeCmd{URLs: []string{"example.com/pricing"}, Concurrency: 1, Out: dir}).Run(deps))

	_, err := os.Stat(filepath.Join(dir, "example.com", "pricing.json"))
	assert.NoError(t, err)
}
