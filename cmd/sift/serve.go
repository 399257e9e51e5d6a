package main

import (
	sifthttp "github.com/fwojciec/sift/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := sifthttp.NewServer(
		sifthttp.WithLogger(deps.Logger),
		sifthttp.WithRegistry(reg),
	)
	s.Addr = deps.Config.Server.Addr
	if c.Addr != "" {
		s.Addr = c.Addr
	}
	s.PageScraper = deps.Pages
	s.SocialScraper = deps.Social
	s.JobService = deps.Jobs

	return s.ListenAndServe(deps.Ctx)
}
