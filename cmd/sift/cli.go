package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/fwojciec/sift"
	"github.com/fwojciec/sift/config"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *config.Config
	Pages  sift.PageScraper
	Social sift.SocialScraper
	Jobs   sift.JobService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `short:"C" type:"path" env:"SIFT_CONFIG" help:"YAML config file"`
	LogLevel string `name:"log-level" help:"Override the configured log level (debug, info, warn, error)"`

	Serve  ServeCmd  `cmd:"" help:"Run the HTTP API"`
	Scrape ScrapeCmd `cmd:"" help:"Extract the structure of one or more pages"`
	Social SocialCmd `cmd:"" help:"Search a social platform by keyword"`
	Trends TrendsCmd `cmd:"" help:"Show trending TikTok hashtags"`
	Jobs   JobsCmd   `cmd:"" help:"Inspect scrape history"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent scrape limit"`
	Out         string   `short:"o" type:"path" help:"Also save each result as JSON under this directory"`
}

// SocialCmd is the "social" subcommand.
type SocialCmd struct {
	Platform   string   `arg:"" help:"tiktok, youtube or instagram"`
	Keywords   []string `arg:"" name:"keyword" help:"Search keywords, hashtags or @profiles"`
	MaxResults int      `short:"n" name:"max" help:"Maximum results (1-100, default 20)"`
}

// TrendsCmd is the "trends" subcommand.
type TrendsCmd struct{}

// JobsCmd groups the job history subcommands.
type JobsCmd struct {
	List   JobsListCmd   `cmd:"" help:"List recent scrape jobs"`
	Show   JobsShowCmd   `cmd:"" help:"Show a job and its stored result"`
	Delete JobsDeleteCmd `cmd:"" help:"Delete a job and its result"`
}

// JobsListCmd is the "jobs list" subcommand.
type JobsListCmd struct {
	Status string `help:"Only show jobs with this status (pending, completed, failed)"`
	Limit  int    `short:"n" default:"20" help:"Number of jobs to show"`
	Offset int    `help:"Number of jobs to skip"`
}

// JobsShowCmd is the "jobs show" subcommand.
type JobsShowCmd struct {
	ID string `arg:"" help:"Job ID"`
}

// JobsDeleteCmd is the "jobs delete" subcommand.
type JobsDeleteCmd struct {
	ID    string `arg:"" help:"Job ID"`
	Force bool   `help:"Confirm deletion"`
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
