// internal/common/camunda/worker.go
package camunda

import (
	"sync"

	"personality-workers/internal/common/config"
	"personality-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler completes or fails the job itself.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// JobWorkerFactory is the subset of zbc.Client that opens job workers.
type JobWorkerFactory interface {
	NewJobWorker() worker.JobWorkerBuilderStep1
}

var _ JobWorkerFactory = zbc.Client(nil)

// Pool tracks the open job workers so they can be closed together.
type Pool struct {
	mu      sync.Mutex
	client  JobWorkerFactory
	logger  logger.Logger
	workers map[string]worker.JobWorker
}

func NewPool(client JobWorkerFactory, log logger.Logger) *Pool {
	return &Pool{client: client, logger: log, workers: map[string]worker.JobWorker{}}
}

// Start opens a job worker for taskType unless it is disabled.
func (p *Pool) Start(taskType string, cfg config.WorkerConfig, handler JobHandler) bool {
	if !cfg.Enabled {
		p.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	jw := p.client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(cfg.MaxJobsActive).
		Timeout(config.GetDuration(cfg.Timeout)).
		Name(taskType).
		Open()

	p.mu.Lock()
	p.workers[taskType] = jw
	p.mu.Unlock()

	p.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": cfg.MaxJobsActive,
		"timeoutMs":     cfg.Timeout,
	})
	return true
}

// Running lists the task types with an open worker.
func (p *Pool) Running() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.workers))
	for t := range p.workers {
		out = append(out, t)
	}
	return out
}

// Close stops every worker and waits for in-flight jobs.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for taskType, jw := range p.workers {
		p.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		jw.Close()
		jw.AwaitClose()
	}
	p.workers = map[string]worker.JobWorker{}
}
