package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by category and type",
		},
		[]string{"category", "type"},
	)

	// Push Metrics
	PushMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_messages_total",
			Help: "Total number of push messages by outcome",
		},
		[]string{"status"},
	)

	PushChunksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_chunks_total",
			Help: "Total number of push gateway chunk submissions",
		},
		[]string{"status"},
	)

	// Notification Job Metrics
	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_job_runs_total",
			Help: "Total number of notification job runs",
		},
		[]string{"trigger"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notification_job_duration_seconds",
			Help:    "Duration of notification job runs",
			Buckets: []float64{.1, .5, 1, 5, 15, 60, 120, 300},
		},
		[]string{"trigger"},
	)
)

// TrackDBOperation returns a timer observing into the DB duration histogram.
// Usage mirrors the repositories: start before the query, ObserveDuration after.
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

func TrackError(category, errType string) {
	ErrorsTotal.WithLabelValues(category, errType).Inc()
}

func TrackPushMessages(status string, n int) {
	PushMessagesTotal.WithLabelValues(status).Add(float64(n))
}

func TrackPushChunk(status string) {
	PushChunksTotal.WithLabelValues(status).Inc()
}

// TrackJobRun returns a timer for one job invocation and counts the run.
func TrackJobRun(trigger string) *prometheus.Timer {
	JobRunsTotal.WithLabelValues(trigger).Inc()
	return prometheus.NewTimer(JobDuration.WithLabelValues(trigger))
}
