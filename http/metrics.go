package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scrape kinds and outcomes used as metric labels.
const (
	KindPage   = "page"
	KindSocial = "social"
	KindTrends = "trends"

	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds the Prometheus collectors recorded by the server.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ScrapesTotal    *prometheus.CounterVec
}

// NewMetrics registers the server collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sift_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sift_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		ScrapesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sift_scrapes_total",
			Help: "Total number of scrape operations by kind and outcome",
		}, []string{"kind", "outcome"}),
	}
}

// ObserveScrape counts one scrape of kind.
func (m *Metrics) ObserveScrape(kind string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.ScrapesTotal.WithLabelValues(kind, outcome).Inc()
}
