// Package config loads sift settings from an optional YAML file, .env files
// and environment variables. Environment values win over the file.
//
// Recognized variables:
//
//	FIRECRAWL_API_KEY   Firecrawl credential
//	APIFY_API_TOKEN     Apify credential
//	SIFT_DB             job history database path
//	SIFT_ADDR           HTTP listen address
//	SIFT_PAGE_FETCHER   "firecrawl" or "direct"
//	SIFT_LOG_LEVEL      debug, info, warn or error
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Page fetcher and extractor names.
const (
	FetcherFirecrawl = "firecrawl"
	FetcherDirect    = "direct"

	ExtractorTrafilatura = "trafilatura"
	ExtractorReadability = "readability"
)

// Configuration validation errors.
var (
	ErrInvalidPageFetcher = errors.New("fetch.page_fetcher must be 'firecrawl' or 'direct'")
	ErrInvalidExtractor   = errors.New("fetch.extractor must be 'trafilatura' or 'readability'")
	ErrInvalidRateLimit   = errors.New("fetch.rate_limit must be positive")
	ErrInvalidTimeout     = errors.New("fetch.timeout must be positive")
	ErrInvalidWaitSeconds = errors.New("apify.wait_seconds must be at least 1")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrMissingAddr        = errors.New("server.addr is required")
)

// Config is the complete sift configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Firecrawl FirecrawlConfig `yaml:"firecrawl"`
	Apify     ApifyConfig     `yaml:"apify"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig configures job history. An empty path selects the
// default location in the user's home directory.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// FetchConfig selects how pages are fetched.
type FetchConfig struct {
	PageFetcher string        `yaml:"page_fetcher"`
	Extractor   string        `yaml:"extractor"`
	RateLimit   float64       `yaml:"rate_limit"`
	Burst       int           `yaml:"burst"`
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
}

// FirecrawlConfig holds the Firecrawl connection settings.
type FirecrawlConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// ApifyConfig holds the Apify connection settings. Actors overrides the
// actor used per platform.
type ApifyConfig struct {
	Token       string            `yaml:"token"`
	BaseURL     string            `yaml:"base_url"`
	WaitSeconds int               `yaml:"wait_seconds"`
	Actors      map[string]string `yaml:"actors"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Fetch: FetchConfig{
			PageFetcher: FetcherFirecrawl,
			Extractor:   ExtractorTrafilatura,
			RateLimit:   1,
			Burst:       1,
			Timeout:     15 * time.Second,
		},
		Apify:   ApifyConfig{WaitSeconds: 120},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment read through getenv, then validates it.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if getenv == nil {
		return
	}
	for name, dst := range map[string]*string{
		"FIRECRAWL_API_KEY": &c.Firecrawl.APIKey,
		"APIFY_API_TOKEN":   &c.Apify.Token,
		"SIFT_DB":           &c.Database.Path,
		"SIFT_ADDR":         &c.Server.Addr,
		"SIFT_PAGE_FETCHER": &c.Fetch.PageFetcher,
		"SIFT_LOG_LEVEL":    &c.Logging.Level,
	} {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			*dst = v
		}
	}
}

// Validate checks the configuration. Missing credentials are not an error
// here; the connector that needs one reports it when used.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return ErrMissingAddr
	}
	switch c.Fetch.PageFetcher {
	case FetcherFirecrawl, FetcherDirect:
	default:
		return ErrInvalidPageFetcher
	}
	switch c.Fetch.Extractor {
	case ExtractorTrafilatura, ExtractorReadability:
	default:
		return ErrInvalidExtractor
	}
	if c.Fetch.RateLimit <= 0 {
		return ErrInvalidRateLimit
	}
	if c.Fetch.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Apify.WaitSeconds < 1 {
		return ErrInvalidWaitSeconds
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

// LoadEnvFiles loads .env files into the process environment. When ENV_FILE
// is set only that file is read; otherwise .env.local is read before .env so
// its values win. Missing files are ignored and existing variables are never
// overwritten.
func LoadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		return loadEnvFile(envFile)
	}
	for _, f := range []string{".env.local", ".env"} {
		if err := loadEnvFile(f); err != nil {
			return err
		}
	}
	return nil
}

func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
