// Package apify runs Apify actors for social searches and normalizes the
// records they produce into sift.SocialResult values.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/sift"
)

// DefaultBaseURL is the Apify API endpoint.
const DefaultBaseURL = "https://api.apify.com"

// DefaultWaitSeconds is how long an actor run is awaited before the API
// returns.
const DefaultWaitSeconds = 120

// Compile-time interface verification.
var (
	_ sift.ActorRunner   = (*Client)(nil)
	_ sift.DatasetReader = (*Client)(nil)
)

// Client talks to the Apify REST API.
type Client struct {
	token   string
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

// NewClient creates a new Client.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		// Runs are awaited server side, so leave room beyond the wait.
		client: &http.Client{Timeout: (DefaultWaitSeconds + 30) * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API token is set.
func (c *Client) Configured() bool {
	return c.token != ""
}

// RunActor starts actorID ("owner/name") with input and waits for the run.
func (c *Client) RunActor(ctx context.Context, actorID string, input any, waitSeconds int) (string, error) {
	if !c.Configured() {
		return "", sift.Errorf(sift.ECONFIG, "Apify API token not configured")
	}

	body, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("encode actor input: %w", err)
	}

	q := url.Values{}
	q.Set("token", c.token)
	q.Set("waitForFinish", strconv.Itoa(waitSeconds))
	endpoint := fmt.Sprintf("%s/v2/acts/%s/runs?%s", c.baseURL, actorPath(actorID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", unreachable("Apify run failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", unreachable("Apify run failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &sift.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Apify run failed (%d): %s", resp.StatusCode, string(raw)),
		}
	}

	var run struct {
		Data struct {
			ID               string `json:"id"`
			Status           string `json:"status"`
			DefaultDatasetID string `json:"defaultDatasetId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &run); err != nil || run.Data.DefaultDatasetID == "" {
		return "", &sift.ProviderError{
			StatusCode: http.StatusBadGateway,
			Message:    "No dataset returned from Apify run",
		}
	}
	return run.Data.DefaultDatasetID, nil
}

// DatasetItems fetches up to limit items from a dataset as raw JSON records.
func (c *Client) DatasetItems(ctx context.Context, datasetID string, limit int) ([]json.RawMessage, error) {
	if !c.Configured() {
		return nil, sift.Errorf(sift.ECONFIG, "Apify API token not configured")
	}

	q := url.Values{}
	q.Set("token", c.token)
	q.Set("format", "json")
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	endpoint := fmt.Sprintf("%s/v2/datasets/%s/items?%s", c.baseURL, url.PathEscape(datasetID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, unreachable("Failed to fetch dataset", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &sift.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Failed to fetch dataset: %d", resp.StatusCode),
		}
	}

	var items []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, &sift.ProviderError{
			StatusCode: http.StatusBadGateway,
			Message:    "Failed to fetch dataset: invalid JSON",
		}
	}
	return items, nil
}

// unreachable reports a transport failure for stage. Callers see only the
// stage; the cause stays reachable through errors.Is and errors.As.
func unreachable(stage string, err error) error {
	return &sift.ProviderError{
		StatusCode: http.StatusBadGateway,
		Message:    stage + ": could not reach Apify",
		Err:        err,
	}
}

// actorPath converts "owner/name" to the "owner~name" form used in URLs.
func actorPath(actorID string) string {
	return url.PathEscape(strings.Replace(actorID, "/", "~", 1))
}
