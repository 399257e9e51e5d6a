// Package scrape turns a URL into a structured page outline. It guards the
// URL, fetches the page through a sift.PageFetcher, runs the structure
// extractor and optionally records the attempt in job history.
package scrape

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/sift"
	"github.com/google/uuid"
)

// Ensure Service implements sift.PageScraper at compile time.
var _ sift.PageScraper = (*Service)(nil)

// Service scrapes single pages. Jobs is optional; without it nothing is
// persisted. Logger defaults to slog.Default.
type Service struct {
	Fetcher   sift.PageFetcher
	Extractor sift.PageExtractor
	Jobs      sift.JobService
	Logger    *slog.Logger
}

// Scrape validates rawURL, fetches it once and extracts its structure.
// Invalid or internal URLs fail before any network call.
func (s *Service) Scrape(ctx context.Context, rawURL string) (*sift.PageResult, error) {
	target, err := sift.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	jobID := uuid.New().String()
	if s.Jobs != nil {
		if err := s.Jobs.CreateJob(ctx, &sift.Job{ID: jobID, URL: target, Status: sift.JobPending}); err != nil {
			return nil, fmt.Errorf("create job: %w", err)
		}
	}

	page, err := s.Fetcher.FetchPage(ctx, target)
	if err != nil {
		s.fail(ctx, jobID, err)
		return nil, err
	}

	extraction := s.Extractor.ExtractPage(page)

	if s.Jobs != nil {
		if err := s.Jobs.SaveResult(ctx, jobID, extraction); err != nil {
			return nil, fmt.Errorf("save result: %w", err)
		}
		if err := s.Jobs.UpdateJobStatus(ctx, jobID, sift.JobCompleted, ""); err != nil {
			return nil, fmt.Errorf("complete job: %w", err)
		}
	}

	meta := page.Metadata
	meta.SourceURL = target
	return &sift.PageResult{
		JobID:          jobID,
		PageExtraction: *extraction,
		Metadata:       meta,
		Remaining:      page.Remaining,
	}, nil
}

// fail records the fetch error on the job. The fetch error is what the
// caller sees; a failure to record it is logged.
func (s *Service) fail(ctx context.Context, jobID string, cause error) {
	if s.Jobs == nil {
		return
	}
	if err := s.Jobs.UpdateJobStatus(ctx, jobID, sift.JobFailed, sift.ErrorMessage(cause)); err != nil {
		logger := s.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("failed to mark job failed", "job", jobID, "cause", cause, "err", err)
	}
}
