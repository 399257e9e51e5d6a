package main

import (
	"fmt"

	"github.com/fwojciec/sift"
	"github.com/fwojciec/sift/fs"
	"golang.org/x/sync/errgroup"
)

// scrapeOutput is one entry of the scrape command's output.
type scrapeOutput struct {
	URL     string `json:"url"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	*sift.PageResult
}

// Run executes the scrape command. Every URL is attempted; results are
// printed in argument order followed by an error if any failed.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	limit := c.Concurrency
	if limit <= 0 {
		limit = 1
	}

	out := make([]scrapeOutput, len(c.URLs))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, u := range c.URLs {
		g.Go(func() error {
			res, err := deps.Pages.Scrape(deps.Ctx, u)
			if err != nil {
				out[i] = scrapeOutput{URL: u, Error: sift.ErrorMessage(err)}
				return nil
			}
			out[i] = scrapeOutput{URL: u, Success: true, PageResult: res}
			return nil
		})
	}
	_ = g.Wait()

	if c.Out != "" {
		w := fs.NewWriter(c.Out)
		for i := range out {
			if !out[i].Success {
				continue
			}
			path, err := w.WriteResult(out[i].PageResult)
			if err != nil {
				return fmt.Errorf("save %s: %w", out[i].URL, err)
			}
			deps.Logger.Debug("saved result", "url", out[i].URL, "path", path)
		}
	}

	if err := printJSON(deps.Stdout, out); err != nil {
		return err
	}

	failed := 0
	for _, o := range out {
		if !o.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(out))
	}
	return nil
}
