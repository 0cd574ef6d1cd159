// Package metrics exposes Prometheus instrumentation for the
// scheduler jobs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spaceops_job_runs_total",
		Help: "Completed scheduler job invocations.",
	}, []string{"job"})

	outcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spaceops_job_outcomes_total",
		Help: "Per-space outcomes recorded by scheduler jobs.",
	}, []string{"job", "status"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "spaceops_job_duration_seconds",
		Help:    "Wall-clock duration of scheduler job invocations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
)

// ObserveRun records one completed job invocation.
func ObserveRun(job string, duration time.Duration) {
	runsTotal.WithLabelValues(job).Inc()
	runDuration.WithLabelValues(job).Observe(duration.Seconds())
}

// CountOutcome records one per-space outcome.
func CountOutcome(job, status string) {
	outcomesTotal.WithLabelValues(job, status).Inc()
}
