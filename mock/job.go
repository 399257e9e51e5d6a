package mock

import (
	"context"

	"github.com/fwojciec/sift"
)

var _ sift.JobService = (*JobService)(nil)

// JobService is a mock implementation of sift.JobService.
type JobService struct {
	CreateJobFn         func(ctx context.Context, job *sift.Job) error
	FindJobByIDFn       func(ctx context.Context, id string) (*sift.Job, error)
	FindJobsFn          func(ctx context.Context, filter sift.JobFilter) ([]*sift.Job, error)
	UpdateJobStatusFn   func(ctx context.Context, id, status, errMsg string) error
	SaveResultFn        func(ctx context.Context, jobID string, result *sift.PageExtraction) error
	FindResultByJobIDFn func(ctx context.Context, jobID string) (*sift.JobResult, error)
	DeleteJobFn         func(ctx context.Context, id string) error
}

func (s *JobService) CreateJob(ctx context.Context, job *sift.Job) error {
	return s.CreateJobFn(ctx, job)
}

func (s *JobService) FindJobByID(ctx context.Context, id string) (*sift.Job, error) {
	return s.FindJobByIDFn(ctx, id)
}

func (s *JobService) FindJobs(ctx context.Context, filter sift.JobFilter) ([]*sift.Job, error) {
	return s.FindJobsFn(ctx, filter)
}

func (s *JobService) UpdateJobStatus(ctx context.Context, id, status, errMsg string) error {
	return s.UpdateJobStatusFn(ctx, id, status, errMsg)
}

func (s *JobService) SaveResult(ctx context.Context, jobID string, result *sift.PageExtraction) error {
	return s.SaveResultFn(ctx, jobID, result)
}

func (s *JobService) FindResultByJobID(ctx context.Context, jobID string) (*sift.JobResult, error) {
	return s.FindResultByJobIDFn(ctx, jobID)
}

func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	return s.DeleteJobFn(ctx, id)
}
