// Package firecrawl implements sift.PageFetcher using the Firecrawl
// scrape API.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/sift"
)

// DefaultBaseURL is the Firecrawl API endpoint.
const DefaultBaseURL = "https://api.firecrawl.dev"

// DefaultTimeout bounds a single scrape request.
const DefaultTimeout = 60 * time.Second

// Ensure Client implements sift.PageFetcher at compile time.
var _ sift.PageFetcher = (*Client)(nil)

// Client fetches pages through Firecrawl.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a new Client. An empty apiKey is accepted here and
// reported as a configuration error on first use.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type scrapeRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
}

type scrapeData struct {
	HTML     string   `json:"html"`
	Markdown string   `json:"markdown"`
	Links    []string `json:"links"`
	Metadata struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		OGDescription string `json:"ogDescription"`
		SourceURL     string `json:"sourceURL"`
	} `json:"metadata"`
}

type scrapeResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// FetchPage scrapes url and returns its HTML, markdown, links and metadata.
func (c *Client) FetchPage(ctx context.Context, url string) (*sift.FetchedPage, error) {
	if c.apiKey == "" {
		return nil, sift.Errorf(sift.ECONFIG, "Firecrawl connector not configured")
	}

	body, err := json.Marshal(scrapeRequest{
		URL:             url,
		Formats:         []string{"markdown", "html", "links"},
		OnlyMainContent: false,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &sift.ProviderError{
			StatusCode: http.StatusBadGateway,
			Message:    "Failed to scrape: could not reach Firecrawl",
			Err:        err,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &sift.ProviderError{
			StatusCode: http.StatusBadGateway,
			Message:    "Failed to scrape: could not read Firecrawl response",
			Err:        err,
		}
	}

	var sr scrapeResponse
	decodeErr := json.Unmarshal(raw, &sr)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := sr.Error
		if decodeErr != nil || msg == "" {
			msg = fmt.Sprintf("Request failed with status %d", resp.StatusCode)
		}
		return nil, &sift.ProviderError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, &sift.ProviderError{
			StatusCode: http.StatusBadGateway,
			Message:    "Invalid response from Firecrawl",
		}
	}

	// Older responses carry the payload at the top level.
	payload := sr.Data
	if len(payload) == 0 || string(payload) == "null" {
		payload = raw
	}
	var data scrapeData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, &sift.ProviderError{
			StatusCode: http.StatusBadGateway,
			Message:    "Invalid response from Firecrawl",
		}
	}

	page := &sift.FetchedPage{
		HTML:     data.HTML,
		Markdown: data.Markdown,
		Links:    data.Links,
		Metadata: sift.PageMetadata{
			Title:         data.Metadata.Title,
			Description:   data.Metadata.Description,
			OGDescription: data.Metadata.OGDescription,
			SourceURL:     url,
		},
	}
	if v := resp.Header.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Remaining = &n
		}
	}
	return page, nil
}
