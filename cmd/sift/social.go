package main

import (
	"fmt"

	"github.com/fwojciec/sift"
)

// Run executes the social command.
func (c *SocialCmd) Run(deps *Dependencies) error {
	res, err := deps.Social.Scrape(deps.Ctx, sift.SocialScrapeRequest{
		Platform:   c.Platform,
		Keywords:   c.Keywords,
		MaxResults: c.MaxResults,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sift.ErrorMessage(err))
		return err
	}
	return printJSON(deps.Stdout, res)
}

// Run executes the trends command.
func (c *TrendsCmd) Run(deps *Dependencies) error {
	report, err := deps.Social.Trends(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sift.ErrorMessage(err))
		return err
	}
	return printJSON(deps.Stdout, report)
}
