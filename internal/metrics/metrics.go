// Package metrics exports Prometheus metrics for provider fan-out and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/honeycarbs/remote-jobs/internal/domain/job"
)

const namespace = "remote_jobs"

// Metrics holds every collector on a private registry so tests can build as
// many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	// Provider fan-out
	ProviderFetches       *prometheus.CounterVec
	ProviderFetchDuration *prometheus.HistogramVec
	Fallbacks             *prometheus.CounterVec
	SearchDuration        prometheus.Histogram
	SearchResults         prometheus.Histogram

	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New registers all collectors, plus the Go runtime and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		ProviderFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_fetch_total",
			Help:      "Provider calls by outcome (success, error, timeout, panic, unavailable)",
		}, []string{"provider", "outcome"}),

		ProviderFetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_fetch_duration_seconds",
			Help:      "Time spent in a provider FetchJobs call",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}, []string{"provider"}),

		Fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_total",
			Help:      "Searches served by the local store, by reason",
		}, []string{"reason"}),

		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end aggregated search time",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8},
		}),

		SearchResults: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Jobs returned per search page",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Handler serves the registry for /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveFetch(provider, outcome string, elapsed time.Duration) {
	m.ProviderFetches.WithLabelValues(provider, outcome).Inc()
	if outcome != job.OutcomeUnavailable {
		m.ProviderFetchDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) ObserveFallback(reason string) {
	m.Fallbacks.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveSearch(elapsed time.Duration, jobs int) {
	m.SearchDuration.Observe(elapsed.Seconds())
	m.SearchResults.Observe(float64(jobs))
}

// ObserveHTTP records one served request. route is the matched route pattern,
// never the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

var _ job.Recorder = (*Metrics)(nil)
