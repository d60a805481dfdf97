package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

// Metrics holds the server's Prometheus collectors. Each server owns its
// registry so several can coexist in one process.
type Metrics struct {
	registry     *prometheus.Registry
	summaryVec   *prometheus.SummaryVec
	counterVec   *prometheus.CounterVec
	analyses     *prometheus.CounterVec
	overallScore prometheus.Histogram
}

// NewMetrics registers the HTTP and analysis collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		summaryVec: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.005,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
		counterVec: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_analyses_total",
				Help: "Documents scored, by score band",
			},
			[]string{"band"},
		),
		overallScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "resume_overall_score",
				Help:    "Distribution of overall resume scores",
				Buckets: prometheus.LinearBuckets(10, 10, 10),
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	m.summaryVec.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.counterVec.WithLabelValues(method, path, code).Inc()
}

// ObserveResult records one scored document.
func (m *Metrics) ObserveResult(result types.AnalysisResult) {
	m.analyses.WithLabelValues(string(scoring.Band(result.OverallScore))).Inc()
	m.overallScore.Observe(float64(result.OverallScore))
}
