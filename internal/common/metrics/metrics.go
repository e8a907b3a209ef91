// internal/common/metrics/metrics.go
package metrics

import (
	"time"

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

	ArchetypesAssigned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personality_archetypes_assigned_total",
			Help: "Avatars synthesized per archetype",
		},
		[]string{"archetype"},
	)

	CharactersMatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personality_characters_matched_total",
			Help: "Character matches per character and confidence",
		},
		[]string{"character", "confidence"},
	)

	DegradedAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personality_degraded_analyses_total",
			Help: "Analyses that fell back to the minimal result",
		},
		[]string{"mode"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personality_cache_lookups_total",
			Help: "Analysis cache lookups by result",
		},
		[]string{"result"},
	)

	ChatReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personality_chat_replies_total",
			Help: "Character chat replies by status",
		},
		[]string{"character", "status"},
	)
)

// JobTimer tracks one job across the active gauge and duration histogram.
type JobTimer struct {
	taskType string
	start    time.Time
}

// StartJob marks a job active.
func StartJob(taskType string) *JobTimer {
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobTimer{taskType: taskType, start: time.Now()}
}

// Complete records success and returns the elapsed time.
func (t *JobTimer) Complete() time.Duration {
	WorkerJobsCompleted.WithLabelValues(t.taskType).Inc()
	return t.finish()
}

// Fail records a failure under errorCode and returns the elapsed time.
func (t *JobTimer) Fail(errorCode string) time.Duration {
	WorkerJobsFailed.WithLabelValues(t.taskType, errorCode).Inc()
	return t.finish()
}

func (t *JobTimer) finish() time.Duration {
	elapsed := time.Since(t.start)
	WorkerJobsActive.WithLabelValues(t.taskType).Dec()
	WorkerJobDuration.WithLabelValues(t.taskType).Observe(elapsed.Seconds())
	return elapsed
}
