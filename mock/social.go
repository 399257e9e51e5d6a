package mock

import (
	"context"
	"encoding/json"

	"github.com/fwojciec/sift"
)

// Compile-time interface verification.
var (
	_ sift.ActorRunner   = (*ActorRunner)(nil)
	_ sift.DatasetReader = (*DatasetReader)(nil)
	_ sift.SocialScraper = (*SocialScraper)(nil)
)

// ActorRunner is a mock implementation of sift.ActorRunner.
type ActorRunner struct {
	RunActorFn func(ctx context.Context, actorID string, input any, waitSeconds int) (string, error)
}

func (r *ActorRunner) RunActor(ctx context.Context, actorID string, input any, waitSeconds int) (string, error) {
	return r.RunActorFn(ctx, actorID, input, waitSeconds)
}

// DatasetReader is a mock implementation of sift.DatasetReader.
type DatasetReader struct {
	DatasetItemsFn func(ctx context.Context, datasetID string, limit int) ([]json.RawMessage, error)
}

func (r *DatasetReader) DatasetItems(ctx context.Context, datasetID string, limit int) ([]json.RawMessage, error) {
	return r.DatasetItemsFn(ctx, datasetID, limit)
}

// SocialScraper is a mock implementation of sift.SocialScraper.
type SocialScraper struct {
	ScrapeFn func(ctx context.Context, req sift.SocialScrapeRequest) (*sift.SocialScrapeResult, error)
	TrendsFn func(ctx context.Context) (*sift.TrendReport, error)
}

func (s *SocialScraper) Scrape(ctx context.Context, req sift.SocialScrapeRequest) (*sift.SocialScrapeResult, error) {
	return s.ScrapeFn(ctx, req)
}

func (s *SocialScraper) Trends(ctx context.Context) (*sift.TrendReport, error) {
	return s.TrendsFn(ctx)
}
