package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/sift"
)

// Run executes the jobs list command.
func (c *JobsListCmd) Run(deps *Dependencies) error {
	filter := sift.JobFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Status != "" {
		filter.Status = &c.Status
	}

	jobs, err := deps.Jobs.FindJobs(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sift.ErrorMessage(err))
		return err
	}

	if len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "No jobs found. Use 'sift scrape' to create one.")
		return nil
	}

	for _, j := range jobs {
		fmt.Fprintf(deps.Stdout, "%s  %-9s  %s  %s\n", j.ID, j.Status, j.CreatedAt.Format(time.DateTime), j.URL)
	}
	return nil
}

// Run executes the jobs show command.
func (c *JobsShowCmd) Run(deps *Dependencies) error {
	job, err := deps.Jobs.FindJobByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sift.ErrorMessage(err))
		return err
	}

	out := struct {
		Job    *sift.Job       `json:"job"`
		Result *sift.JobResult `json:"result,omitempty"`
	}{Job: job}

	if job.Status == sift.JobCompleted {
		res, err := deps.Jobs.FindResultByJobID(deps.Ctx, c.ID)
		if err != nil && sift.ErrorCode(err) != sift.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sift.ErrorMessage(err))
			return err
		}
		out.Result = res
	}

	return printJSON(deps.Stdout, out)
}

// Run executes the jobs delete command.
func (c *JobsDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return sift.Errorf(sift.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Jobs.DeleteJob(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sift.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted job %s\n", c.ID)
	return nil
}
