// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	CommandsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigation_commands_parsed_total",
			Help: "Total number of parsed navigation commands by intent type",
		},
		[]string{"intent_type"},
	)

	IntentValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigation_intent_validation_failures_total",
			Help: "Total number of intents rejected by required-field validation",
		},
		[]string{"intent_type"},
	)

	NavigationsLaunched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigation_launches_total",
			Help: "Total number of navigation URLs produced by provider and path",
		},
		[]string{"provider", "path"},
	)
)
