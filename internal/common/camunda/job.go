// internal/common/camunda/job.go
package camunda

import (
	"context"
	"time"

	"personality-workers/internal/common/errors"
	"personality-workers/internal/common/logger"
	"personality-workers/internal/common/metrics"
	"personality-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// JobReporter finishes jobs and records their metrics.
type JobReporter struct {
	taskType string
	errors   *errors.ErrorHandler
	obs      *observability.Observability
	logger   logger.Logger
}

func NewJobReporter(taskType string, obs *observability.Observability, log logger.Logger) *JobReporter {
	return &JobReporter{
		taskType: taskType,
		errors:   errors.NewErrorHandler(log),
		obs:      obs,
		logger:   log,
	}
}

// Start marks the job active and logs it.
func (r *JobReporter) Start(job entities.Job) *metrics.JobTimer {
	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	return metrics.StartJob(r.taskType)
}

// Complete sends output as the job's variables.
func (r *JobReporter) Complete(client worker.JobClient, job entities.Job, timer *metrics.JobTimer, output interface{}) {
	ctx := context.Background()

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		r.Fail(client, job, timer, errors.NewInternalError(err))
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
	r.record(ctx, timer.Complete(), statusCompleted)
}

// Fail retries or throws depending on the error code.
func (r *JobReporter) Fail(client worker.JobClient, job entities.Job, timer *metrics.JobTimer, err error) {
	ctx := context.Background()
	stdErr := errors.AsStandardError(err)
	r.errors.HandleJobError(ctx, client, job, stdErr)
	r.record(ctx, timer.Fail(string(stdErr.Code)), statusFailed)
}

func (r *JobReporter) record(ctx context.Context, elapsed time.Duration, status string) {
	r.obs.RecordJobProcessed(ctx, r.taskType, status)
	r.obs.RecordJobDuration(ctx, r.taskType, elapsed, status)
}
