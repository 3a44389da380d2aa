package providers

import (
	"talkmigrate/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTestRegistry(t *testing.T) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	prevReg, prevGather := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGather
	})
	return reg
}

func metricValue(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	if m.Counter != nil {
		return m.Counter.GetValue()
	}
	return m.Gauge.GetValue()
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePhaseDuration("stories", time.Millisecond)
	m.AddRecords("comments", "migrated", 3)
	m.SetDanglingReferences(1)
}

func TestMetricsProvider_RecordsCounters(t *testing.T) {
	reg := withTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	mp, ok := m.(*MetricsProvider)
	require.True(t, ok, "should return MetricsProvider when enabled")

	m.AddRecords("comments", "migrated", 3)
	m.AddRecords("comments", "migrated", 2)
	m.AddRecords("comments", "dropped", 0)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncCacheMisses()
	m.SetDanglingReferences(4)
	m.IncRequestsTotal("/health", 200)
	m.ObservePhaseDuration("comments", 5*time.Millisecond)

	assert.Equal(t, float64(5), metricValue(t, mp.records.WithLabelValues("comments", "migrated")))
	assert.Equal(t, float64(1), metricValue(t, mp.cacheHits))
	assert.Equal(t, float64(2), metricValue(t, mp.cacheMisses))
	assert.Equal(t, float64(4), metricValue(t, mp.dangling))
	assert.Equal(t, float64(1), metricValue(t, mp.requestsTotal.WithLabelValues("/health", "2xx")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "talkmigrate_records_total")
	assert.Contains(t, names, "talkmigrate_status_requests_total")
	assert.NotContains(t, names, "talkmigrate_records_dropped")
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
