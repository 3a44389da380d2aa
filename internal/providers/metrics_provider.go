package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"talkmigrate/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(route string, status int)
	ObserveRequestDuration(route string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePhaseDuration(phase string, duration time.Duration)
	AddRecords(collection, outcome string, count int)
	SetDanglingReferences(count int)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	phaseDuration   *prometheus.HistogramVec
	records         *prometheus.CounterVec
	dangling        prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(route string, status int) {
	m.requestsTotal.WithLabelValues(route, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(route string, duration time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePhaseDuration(phase string, duration time.Duration) {
	m.phaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

func (m *MetricsProvider) AddRecords(collection, outcome string, count int) {
	if count <= 0 {
		return
	}
	m.records.WithLabelValues(collection, outcome).Add(float64(count))
}

func (m *MetricsProvider) SetDanglingReferences(count int) {
	m.dangling.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "talkmigrate_status_requests_total",
			Help: "Total number of HTTP requests to the status server",
		}, []string{"route", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "talkmigrate_status_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talkmigrate_url_cache_hits_total",
			Help: "Canonical URL lookups answered from the cache",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talkmigrate_url_cache_misses_total",
			Help: "Canonical URL lookups that had to be computed",
		}),

		phaseDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "talkmigrate_phase_duration_seconds",
			Help:    "Duration of each migration phase in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"phase"}),

		records: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "talkmigrate_records_total",
			Help: "Records processed per collection and outcome",
		}, []string{"collection", "outcome"}),

		dangling: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "talkmigrate_dangling_references",
			Help: "References to records absent from the source",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePhaseDuration(_ string, _ time.Duration)   {}
func (n *noopMetrics) AddRecords(_, _ string, _ int)                    {}
func (n *noopMetrics) SetDanglingReferences(_ int)                      {}
