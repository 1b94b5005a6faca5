package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// SubmissionsTotal counts complaint submissions by outcome.
	SubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nagrik",
		Subsystem: "intake",
		Name:      "submissions_total",
		Help:      "Total number of complaint submissions processed, labeled by result.",
	}, []string{"result"})

	// ClassificationsTotal counts classifier runs by predicted label.
	ClassificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nagrik",
		Subsystem: "intake",
		Name:      "classifications_total",
		Help:      "Total number of image classifications, labeled by predicted issue type.",
	}, []string{"issue_type"})

	// IntakeDurationSeconds is end-to-end time per submission, measured
	// inside the intake pipeline.
	IntakeDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nagrik",
		Subsystem: "intake",
		Name:      "duration_seconds",
		Help:      "End-to-end time to process a complaint submission.",
		// Keep buckets fairly coarse to avoid high-cardinality time series.
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60},
	}, []string{"result"})

	// GeocodeFailuresTotal counts reverse-geocode lookups that fell back
	// to the not-found address.
	GeocodeFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "nagrik",
		Subsystem: "intake",
		Name:      "geocode_failures_total",
		Help:      "Total number of reverse geocode lookups that returned no usable address.",
	})

	// PublishErrorTotal counts failed submitted-report event publishes.
	PublishErrorTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "nagrik",
		Subsystem: "intake",
		Name:      "publish_error_total",
		Help:      "Total number of submitted-report event publish errors.",
	})
)

// Register registers intake metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			SubmissionsTotal,
			ClassificationsTotal,
			IntakeDurationSeconds,
			GeocodeFailuresTotal,
			PublishErrorTotal,
		)
	})
}
