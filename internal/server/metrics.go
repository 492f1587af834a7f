package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the HTTP surface.
type Metrics struct {
	MapRequests *prometheus.CounterVec
	MapDuration prometheus.Histogram
}

// NewMetrics builds and registers the server metrics.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		MapRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orglens",
			Name:      "map_requests_total",
			Help:      "Hierarchy mapping requests by outcome.",
		}, []string{"outcome"}),
		MapDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "orglens",
			Name:      "map_duration_seconds",
			Help:      "End-to-end duration of hierarchy mapping requests.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if registerer != nil {
		registerer.MustRegister(metrics.MapRequests, metrics.MapDuration)
	}
	return metrics
}
