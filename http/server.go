package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/sift"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server defaults.
const (
	DefaultAddr            = ":8080"
	DefaultRequestTimeout  = 180 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Server serves the sift JSON API.
type Server struct {
	router  chi.Router
	logger  *slog.Logger
	metrics *Metrics

	// Addr is the address ListenAndServe binds to.
	Addr string

	// Services used by the handlers. JobService is optional; without it
	// the job routes report a configuration error.
	PageScraper   sift.PageScraper
	SocialScraper sift.SocialScraper
	JobService    sift.JobService
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	logger   *slog.Logger
	registry *prometheus.Registry
	timeout  time.Duration
}

// WithLogger sets the logger used for request and error logs.
func WithLogger(l *slog.Logger) ServerOption {
	return func(c *serverConfig) {
		c.logger = l
	}
}

// WithRegistry sets the registry metrics are recorded in and served from.
func WithRegistry(reg *prometheus.Registry) ServerOption {
	return func(c *serverConfig) {
		c.registry = reg
	}
}

// WithRequestTimeout bounds how long a single request may run.
func WithRequestTimeout(d time.Duration) ServerOption {
	return func(c *serverConfig) {
		c.timeout = d
	}
}

// NewServer creates a Server with its routes mounted.
func NewServer(opts ...ServerOption) *Server {
	cfg := serverConfig{timeout: DefaultRequestTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.registry == nil {
		cfg.registry = prometheus.NewRegistry()
	}

	s := &Server{
		router:  chi.NewRouter(),
		logger:  cfg.logger,
		metrics: NewMetrics(cfg.registry),
		Addr:    DefaultAddr,
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(cors)
	r.Use(middleware.Timeout(cfg.timeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		Error(w, r, s.logger, sift.Errorf(sift.ENOTFOUND, "Not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	})

	r.Get("/metrics", promhttp.HandlerFor(cfg.registry, promhttp.HandlerOpts{}).ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/scrape", s.handleScrape)
		r.Post("/social-scrape", s.handleSocialScrape)
		r.Get("/social/trends", s.handleTrends)
		s.registerJobRoutes(r)
	})

	return s
}

// ServeHTTP routes the request through the middleware stack.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on s.Addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": "ok"})
}

type scrapeRequest struct {
	URL string `json:"url"`
}

type scrapeResponse struct {
	Success bool `json:"success"`
	*sift.PageResult
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := decodeJSON(r, &req); err != nil {
		Error(w, r, s.logger, err)
		return
	}

	res, err := s.PageScraper.Scrape(r.Context(), req.URL)
	s.metrics.ObserveScrape(KindPage, err)
	if err != nil {
		Error(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, scrapeResponse{Success: true, PageResult: res})
}

type socialScrapeResponse struct {
	Success bool `json:"success"`
	*sift.SocialScrapeResult
}

func (s *Server) handleSocialScrape(w http.ResponseWriter, r *http.Request) {
	var req sift.SocialScrapeRequest
	if err := decodeJSON(r, &req); err != nil {
		Error(w, r, s.logger, err)
		return
	}

	res, err := s.SocialScraper.Scrape(r.Context(), req)
	s.metrics.ObserveScrape(KindSocial, err)
	if err != nil {
		Error(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, socialScrapeResponse{Success: true, SocialScrapeResult: res})
}

type trendsResponse struct {
	Success bool `json:"success"`
	*sift.TrendReport
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	report, err := s.SocialScraper.Trends(r.Context())
	s.metrics.ObserveScrape(KindTrends, err)
	if err != nil {
		Error(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, trendsResponse{Success: true, TrendReport: report})
}
