package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/sift"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sift.JobService = (*JobService)(nil)

// JobService implements sift.JobService using SQLite.
type JobService struct {
	db *DB
}

// NewJobService creates a new JobService.
func NewJobService(db *DB) *JobService {
	return &JobService{db: db}
}

// CreateJob creates a new job.
func (s *JobService) CreateJob(ctx context.Context, job *sift.Job) error {
	if job.Status == "" {
		job.Status = sift.JobPending
	}
	if err := job.Validate(); err != nil {
		return err
	}

	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scrape_jobs (id, url, status, error, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, job.ID, job.URL, job.Status, job.Error, job.CreatedAt.Format(time.RFC3339))

	return err
}

// FindJobByID retrieves a job by ID.
func (s *JobService) FindJobByID(ctx context.Context, id string) (*sift.Job, error) {
	var job sift.Job
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, status, error, created_at
		FROM scrape_jobs
		WHERE id = ?
	`, id).Scan(&job.ID, &job.URL, &job.Status, &job.Error, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, sift.Errorf(sift.ENOTFOUND, "job not found")
	}
	if err != nil {
		return nil, err
	}

	if job.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &job, nil
}

// FindJobs retrieves jobs matching the filter, newest first.
func (s *JobService) FindJobs(ctx context.Context, filter sift.JobFilter) ([]*sift.Job, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, status, error, created_at FROM scrape_jobs WHERE 1=1")

	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	if filter.Offset > 0 && filter.Limit <= 0 {
		// SQLite requires LIMIT before OFFSET.
		query.WriteString(" LIMIT -1")
	}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []*sift.Job{}
	for rows.Next() {
		var job sift.Job
		var createdAt string

		if err := rows.Scan(&job.ID, &job.URL, &job.Status, &job.Error, &createdAt); err != nil {
			return nil, err
		}
		if job.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		jobs = append(jobs, &job)
	}

	return jobs, rows.Err()
}

// UpdateJobStatus sets the status and error text of a job.
func (s *JobService) UpdateJobStatus(ctx context.Context, id, status, errMsg string) error {
	switch status {
	case sift.JobPending, sift.JobCompleted, sift.JobFailed:
	default:
		return sift.Errorf(sift.EINVALID, "invalid job status %q", status)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE scrape_jobs SET status = ?, error = ? WHERE id = ?
	`, status, errMsg, id)
	if err != nil {
		return err
	}
	return requireAffected(result, "job not found")
}

// SaveResult stores the extraction for a job.
func (s *JobService) SaveResult(ctx context.Context, jobID string, result *sift.PageExtraction) error {
	if result == nil {
		return sift.Errorf(sift.EINVALID, "result required")
	}

	cols, err := encodeColumns(result.Headers, result.Links, result.Images, result.Resources)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scrape_results (job_id, summary, headers, links, images, resources, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(job_id) DO UPDATE SET
			summary = excluded.summary,
			headers = excluded.headers,
			links = excluded.links,
			images = excluded.images,
			resources = excluded.resources,
			created_at = excluded.created_at
	`, jobID, result.Summary, cols[0], cols[1], cols[2], cols[3], time.Now().UTC().Format(time.RFC3339))
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY") {
		return sift.Errorf(sift.ENOTFOUND, "job not found")
	}
	return err
}

// FindResultByJobID retrieves the stored extraction for a job.
func (s *JobService) FindResultByJobID(ctx context.Context, jobID string) (*sift.JobResult, error) {
	var res sift.JobResult
	var headers, links, images, resources, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT job_id, summary, headers, links, images, resources, created_at
		FROM scrape_results
		WHERE job_id = ?
	`, jobID).Scan(&res.JobID, &res.Summary, &headers, &links, &images, &resources, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, sift.Errorf(sift.ENOTFOUND, "result not found")
	}
	if err != nil {
		return nil, err
	}

	for _, c := range []struct {
		name string
		raw  string
		dst  any
	}{
		{"headers", headers, &res.Headers},
		{"links", links, &res.Links},
		{"images", images, &res.Images},
		{"resources", resources, &res.Resources},
	} {
		if err := json.Unmarshal([]byte(c.raw), c.dst); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", c.name, err)
		}
	}

	if res.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteJob permanently removes a job and its result.
func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM scrape_jobs WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(result, "job not found")
}

// encodeColumns marshals each value to JSON, writing nil slices as "[]".
func encodeColumns(values ...any) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if string(data) == "null" {
			data = []byte("[]")
		}
		out[i] = string(data)
	}
	return out, nil
}
