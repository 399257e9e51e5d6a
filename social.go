package sift

import (
	"context"
	"encoding/json"
	"strings"
)

// Supported social platforms. PlatformInstagramProfile is never requested
// directly; it is selected when Instagram keywords name accounts.
const (
	PlatformTikTok           = "tiktok"
	PlatformYouTube          = "youtube"
	PlatformInstagram        = "instagram"
	PlatformInstagramProfile = "instagram_profile"
)

// Result count bounds for a social scrape.
const (
	DefaultMaxResults = 20
	MaxMaxResults     = 100
)

// SocialResult is one post, video or profile in canonical form.
type SocialResult struct {
	Platform    string   `json:"platform"`
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Caption     string   `json:"caption,omitempty"`
	Author      string   `json:"author"`
	Likes       int64    `json:"likes"`
	Views       int64    `json:"views"`
	Comments    int64    `json:"comments"`
	Shares      *int64   `json:"shares,omitempty"`
	Hashtags    []string `json:"hashtags,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Type        string   `json:"type,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	PublishedAt string   `json:"publishedAt,omitempty"`
	Timestamp   string   `json:"timestamp,omitempty"`

	// Raw holds the provider record when no mapping exists for the
	// platform. When set, it is what gets encoded, tagged with Platform.
	Raw json.RawMessage `json:"-"`
}

// DisplayText returns the first non-empty of title, description and caption.
func (r *SocialResult) DisplayText() string {
	for _, s := range []string{r.Title, r.Description, r.Caption} {
		if s != "" {
			return s
		}
	}
	return ""
}

// MarshalJSON encodes the canonical fields, or the raw record for
// unmapped platforms.
func (r SocialResult) MarshalJSON() ([]byte, error) {
	type result SocialResult
	if len(r.Raw) == 0 {
		return json.Marshal(result(r))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.Raw, &fields); err != nil || fields == nil {
		return json.Marshal(result(r))
	}
	platform, err := json.Marshal(r.Platform)
	if err != nil {
		return nil, err
	}
	fields["platform"] = platform
	return json.Marshal(fields)
}

// SocialScrapeRequest asks for posts matching keywords on a platform.
type SocialScrapeRequest struct {
	Platform   string   `json:"platform"`
	Keywords   []string `json:"keywords"`
	MaxResults int      `json:"maxResults"`
}

// Validate returns an error if the request cannot be dispatched.
// A zero MaxResults is valid and means DefaultMaxResults.
func (r *SocialScrapeRequest) Validate() error {
	if r.Platform == "" {
		return Errorf(EINVALID, "platform is required")
	}
	if len(r.Keywords) == 0 {
		return Errorf(EINVALID, "At least one keyword is required")
	}
	if r.MaxResults < 0 || r.MaxResults > MaxMaxResults {
		return Errorf(EINVALID, "maxResults must be between 1 and %d", MaxMaxResults)
	}
	return nil
}

// Limit returns the effective result limit.
func (r *SocialScrapeRequest) Limit() int {
	if r.MaxResults == 0 {
		return DefaultMaxResults
	}
	return r.MaxResults
}

// SocialScrapeResult is the canonical response to a social scrape.
type SocialScrapeResult struct {
	Platform string         `json:"platform"`
	Keywords []string       `json:"keywords"`
	Count    int            `json:"count"`
	Results  []SocialResult `json:"results"`
}

// NewSocialScrapeResult builds a result whose Count always matches Results.
// Keywords are stripped of a leading '#' or '@' and deduplicated.
func NewSocialScrapeResult(platform string, keywords []string, results []SocialResult) *SocialScrapeResult {
	if results == nil {
		results = []SocialResult{}
	}
	return &SocialScrapeResult{
		Platform: platform,
		Keywords: DisplayKeywords(keywords),
		Count:    len(results),
		Results:  results,
	}
}

// Validate returns an error if Count disagrees with Results.
func (r *SocialScrapeResult) Validate() error {
	if r.Count != len(r.Results) {
		return Errorf(EINTERNAL, "result count %d does not match %d results", r.Count, len(r.Results))
	}
	return nil
}

// StripKeyword trims k and removes a single leading '#' or '@'.
func StripKeyword(k string) string {
	k = strings.TrimSpace(k)
	if strings.HasPrefix(k, "#") || strings.HasPrefix(k, "@") {
		k = k[1:]
	}
	return k
}

// DisplayKeywords strips each keyword and removes empty entries and exact
// duplicates, keeping first-seen order.
func DisplayKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		k = StripKeyword(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// HashtagCount is a hashtag and the number of trending videos using it.
type HashtagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TrendReport summarizes hashtags across currently trending videos.
type TrendReport struct {
	Hashtags   []HashtagCount `json:"hashtags"`
	VideoCount int            `json:"videoCount"`
}

// ActorRunner starts a scraping actor and waits for it to finish.
type ActorRunner interface {
	// RunActor runs actorID with input, waiting up to waitSeconds, and
	// returns the ID of the dataset holding the actor's output.
	RunActor(ctx context.Context, actorID string, input any, waitSeconds int) (datasetID string, err error)
}

// DatasetReader reads records from an actor dataset.
type DatasetReader interface {
	// DatasetItems returns up to limit records. A limit of zero means all.
	DatasetItems(ctx context.Context, datasetID string, limit int) ([]json.RawMessage, error)
}

// SocialScraper runs social searches end to end.
type SocialScraper interface {
	Scrape(ctx context.Context, req SocialScrapeRequest) (*SocialScrapeResult, error)
	Trends(ctx context.Context) (*TrendReport, error)
}

// PageScraper scrapes a single URL end to end.
type PageScraper interface {
	Scrape(ctx context.Context, rawURL string) (*PageResult, error)
}
