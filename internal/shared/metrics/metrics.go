package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	SnapshotsComputed = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_snapshots_total",
			Help: "Performance snapshots served, by cache outcome",
		},
		[]string{"cache"},
	)

	SnapshotFailures = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_snapshot_failures_total",
			Help: "Performance snapshot requests that failed, by stage",
		},
		[]string{"stage"},
	)

	SnapshotDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analytics_snapshot_duration_seconds",
			Help:    "Time spent building a performance snapshot",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SnapshotRecords = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analytics_snapshot_records",
			Help:    "Number of job records fed into the engine",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	RecommendationsEmitted = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_recommendations_total",
			Help: "Recommendations emitted, by rule type and confidence",
		},
		[]string{"type", "confidence"},
	)

	JobsImported = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "jobs_imported_total",
			Help: "Job records imported",
		},
	)

	HTTPRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
