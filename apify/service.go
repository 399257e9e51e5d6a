package apify

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/sift"
	"github.com/tidwall/gjson"
)

// Trend defaults.
const (
	TrendsMaxItems    = 10
	TrendsTopHashtags = 50
)

// Ensure Service implements sift.SocialScraper at compile time.
var _ sift.SocialScraper = (*Service)(nil)

// Service runs social searches: resolve, run the actor, read its dataset
// and normalize. Each step is attempted once.
type Service struct {
	Resolver    *Resolver
	Runner      sift.ActorRunner
	Datasets    sift.DatasetReader
	WaitSeconds int
}

// NewService creates a Service backed by a single Apify client.
func NewService(client *Client, actors Actors) *Service {
	return &Service{
		Resolver:    NewResolver(actors),
		Runner:      client,
		Datasets:    client,
		WaitSeconds: DefaultWaitSeconds,
	}
}

// Scrape runs the actor for req and returns canonical results.
func (s *Service) Scrape(ctx context.Context, req sift.SocialScrapeRequest) (*sift.SocialScrapeResult, error) {
	d, err := s.Resolver.Resolve(req)
	if err != nil {
		return nil, err
	}

	items, err := s.run(ctx, d.ActorID, d.Input, d.Limit)
	if err != nil {
		return nil, err
	}

	return sift.NewSocialScrapeResult(req.Platform, req.Keywords, Normalize(d.Platform, items)), nil
}

// Trends counts hashtags across currently trending TikTok videos.
func (s *Service) Trends(ctx context.Context) (*sift.TrendReport, error) {
	actorID, err := s.Resolver.TrendsActor()
	if err != nil {
		return nil, err
	}

	items, err := s.run(ctx, actorID, map[string]any{"maxItems": TrendsMaxItems}, 0)
	if err != nil {
		return nil, err
	}

	return &sift.TrendReport{
		Hashtags:   CountHashtags(items, TrendsTopHashtags),
		VideoCount: len(items),
	}, nil
}

func (s *Service) run(ctx context.Context, actorID string, input any, limit int) ([]json.RawMessage, error) {
	datasetID, err := s.Runner.RunActor(ctx, actorID, input, s.WaitSeconds)
	if err != nil {
		return nil, fmt.Errorf("run actor %s: %w", actorID, err)
	}
	items, err := s.Datasets.DatasetItems(ctx, datasetID, limit)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", datasetID, err)
	}
	return items, nil
}

// CountHashtags tallies the hashtags of each video and returns the top n,
// most used first. Ties keep first-seen order.
func CountHashtags(items []json.RawMessage, n int) []sift.HashtagCount {
	counts := make(map[string]int)
	var order []string
	for _, item := range items {
		for _, h := range gjson.GetBytes(item, "hashtags").Array() {
			if h.IsObject() {
				h = h.Get("name")
			}
			tag := strings.TrimSpace(strings.ReplaceAll(h.String(), "#", ""))
			if tag == "" {
				continue
			}
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	out := make([]sift.HashtagCount, 0, len(order))
	for _, tag := range order {
		out = append(out, sift.HashtagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
