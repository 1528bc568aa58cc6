package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ViewLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "marketpulse",
			Subsystem: "view",
			Name:      "latency_seconds",
			Help:      "Latency of aggregated market views",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"view"},
	)

	ViewErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketpulse",
			Subsystem: "view",
			Name:      "errors_total",
			Help:      "Errors by market view",
		},
		[]string{"view"},
	)

	// ViewDegraded counts views served with some legs missing.
	ViewDegraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketpulse",
			Subsystem: "view",
			Name:      "degraded_total",
			Help:      "Views served with omitted or defaulted legs",
		},
		[]string{"view"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(ViewLatency, ViewErrors, ViewDegraded)
	})
}

// Observe records the latency of view since start and counts err.
func Observe(view string, start time.Time, err error) {
	ViewLatency.WithLabelValues(view).Observe(time.Since(start).Seconds())
	if err != nil {
		ViewErrors.WithLabelValues(view).Inc()
	}
}

func Degraded(view string) {
	ViewDegraded.WithLabelValues(view).Inc()
}
