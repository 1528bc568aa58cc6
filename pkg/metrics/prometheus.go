package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	upstreamTotal   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	cacheTotal      *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	subscribers     prometheus.Gauge
	broadcasts      *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

var (
	defaultOnce     sync.Once
	defaultRecorder *Recorder
)

// New returns the process-wide recorder registered on the default registry.
func New() *Recorder {
	defaultOnce.Do(func() {
		defaultRecorder = NewWithRegistry(prometheus.DefaultRegisterer)
	})
	return defaultRecorder
}

// NewWithRegistry registers a fresh set of collectors on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		upstreamTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_upstream_requests_total",
				Help: "Upstream API calls by provider and result",
			},
			[]string{"provider", "result"},
		),
		upstreamLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketpulse_upstream_duration_seconds",
				Help:    "Upstream API call duration including retries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		cacheTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_cache_lookups_total",
				Help: "Cache lookups by key namespace and outcome",
			},
			[]string{"namespace", "outcome"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		subscribers: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "marketpulse_push_subscribers",
				Help: "Connected push channel subscribers",
			},
		),
		broadcasts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_push_broadcasts_total",
				Help: "Snapshot broadcasts by result",
			},
			[]string{"result"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordUpstream records one logical upstream call.
func (r *Recorder) RecordUpstream(provider string, ok bool, seconds float64) {
	result := "ok"
	if !ok {
		result = "error"
	}
	r.upstreamTotal.WithLabelValues(provider, result).Inc()
	r.upstreamLatency.WithLabelValues(provider).Observe(seconds)
}

// RecordCache records a cache hit or miss.
func (r *Recorder) RecordCache(namespace string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cacheTotal.WithLabelValues(namespace, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// SetSubscribers sets the current subscriber count.
func (r *Recorder) SetSubscribers(n int) {
	r.subscribers.Set(float64(n))
}

// RecordBroadcast records one push cycle.
func (r *Recorder) RecordBroadcast(result string) {
	r.broadcasts.WithLabelValues(result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
