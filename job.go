package sift

import (
	"context"
	"time"
)

// Job statuses.
const (
	JobPending   = "pending"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// Job records a single page scrape request.
type Job struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate returns an error if the job contains invalid fields.
func (j *Job) Validate() error {
	if j.URL == "" {
		return Errorf(EINVALID, "job URL required")
	}
	switch j.Status {
	case JobPending, JobCompleted, JobFailed:
	default:
		return Errorf(EINVALID, "invalid job status %q", j.Status)
	}
	return nil
}

// JobResult is the stored extraction for a completed job.
type JobResult struct {
	JobID string `json:"job_id"`
	PageExtraction
	CreatedAt time.Time `json:"created_at"`
}

// JobService represents a service for managing scrape history.
type JobService interface {
	// CreateJob creates a new job. ID and CreatedAt are assigned when empty.
	CreateJob(ctx context.Context, job *Job) error

	// FindJobByID retrieves a job by ID.
	// Returns ENOTFOUND if job does not exist.
	FindJobByID(ctx context.Context, id string) (*Job, error)

	// FindJobs retrieves jobs matching the filter, newest first.
	FindJobs(ctx context.Context, filter JobFilter) ([]*Job, error)

	// UpdateJobStatus sets the status and error text of a job.
	// Returns ENOTFOUND if job does not exist.
	UpdateJobStatus(ctx context.Context, id, status, errMsg string) error

	// SaveResult stores the extraction for a job, replacing any previous one.
	SaveResult(ctx context.Context, jobID string, result *PageExtraction) error

	// FindResultByJobID retrieves the stored extraction for a job.
	// Returns ENOTFOUND if no result was saved.
	FindResultByJobID(ctx context.Context, jobID string) (*JobResult, error)

	// DeleteJob permanently removes a job and its result.
	// Returns ENOTFOUND if job does not exist.
	DeleteJob(ctx context.Context, id string) error
}

// JobFilter represents a filter for FindJobs.
type JobFilter struct {
	Status *string `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
