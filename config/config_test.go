package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/sift/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults without file or environment", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load("", env(nil))

		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
		assert.Equal(t, config.FetcherFirecrawl, cfg.Fetch.PageFetcher)
		assert.Equal(t, 120, cfg.Apify.WaitSeconds)
	})

	t.Run("reads YAML file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
server:
  addr: ":9090"
database:
  path: /tmp/sift.db
fetch:
  page_fetcher: direct
  extractor: readability
  rate_limit: 2.5
  burst: 3
  timeout: 30s
  user_agent: test-bot
apify:
  wait_seconds: 60
  actors:
    youtube: someone/yt-scraper
logging:
  level: debug
`)

		cfg, err := config.Load(path, env(nil))

		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, "/tmp/sift.db", cfg.Database.Path)
		assert.Equal(t, config.FetcherDirect, cfg.Fetch.PageFetcher)
		assert.Equal(t, config.ExtractorReadability, cfg.Fetch.Extractor)
		assert.InDelta(t, 2.5, cfg.Fetch.RateLimit, 0.001)
		assert.Equal(t, 3, cfg.Fetch.Burst)
		assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, "test-bot", cfg.Fetch.UserAgent)
		assert.Equal(t, 60, cfg.Apify.WaitSeconds)
		assert.Equal(t, map[string]string{"youtube": "someone/yt-scraper"}, cfg.Apify.Actors)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "firecrawl:\n  api_key: from-file\nserver:\n  addr: \":1\"\n")

		cfg, err := config.Load(path, env(map[string]string{
			"FIRECRAWL_API_KEY": "from-env",
			"APIFY_API_TOKEN":   "apify-token",
			"SIFT_DB":           "jobs.db",
			"SIFT_ADDR":         ":2",
			"SIFT_PAGE_FETCHER": "direct",
			"SIFT_LOG_LEVEL":    "warn",
		}))

		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Firecrawl.APIKey)
		assert.Equal(t, "apify-token", cfg.Apify.Token)
		assert.Equal(t, "jobs.db", cfg.Database.Path)
		assert.Equal(t, ":2", cfg.Server.Addr)
		assert.Equal(t, config.FetcherDirect, cfg.Fetch.PageFetcher)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("blank environment values are ignored", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load("", env(map[string]string{"SIFT_ADDR": "  "}))

		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Addr)
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), env(nil))

		require.Error(t, err)
	})

	t.Run("returns error for malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(writeConfig(t, "server: [unclosed"), env(nil))

		require.Error(t, err)
	})

	t.Run("validates result", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load("", env(map[string]string{"SIFT_PAGE_FETCHER": "browser"}))

		assert.ErrorIs(t, err, config.ErrInvalidPageFetcher)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
		want   error
	}{
		{"missing addr", func(c *config.Config) { c.Server.Addr = "" }, config.ErrMissingAddr},
		{"unknown extractor", func(c *config.Config) { c.Fetch.Extractor = "boilerpipe" }, config.ErrInvalidExtractor},
		{"zero rate limit", func(c *config.Config) { c.Fetch.RateLimit = 0 }, config.ErrInvalidRateLimit},
		{"zero timeout", func(c *config.Config) { c.Fetch.Timeout = 0 }, config.ErrInvalidTimeout},
		{"zero wait", func(c *config.Config) { c.Apify.WaitSeconds = 0 }, config.ErrInvalidWaitSeconds},
		{"unknown log level", func(c *config.Config) { c.Logging.Level = "trace" }, config.ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			tt.modify(cfg)

			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}

	t.Run("accepts defaults", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, config.Default().Validate())
	})
}

func TestLoadEnvFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SIFT_TEST_FROM_ENV_FILE=loaded\n"), 0o644))

	t.Setenv("ENV_FILE", path)
	t.Setenv("SIFT_TEST_FROM_ENV_FILE", "")
	require.NoError(t, os.Unsetenv("SIFT_TEST_FROM_ENV_FILE"))

	require.NoError(t, config.LoadEnvFiles())
	assert.Equal(t, "loaded", os.Getenv("SIFT_TEST_FROM_ENV_FILE"))
}
