// internal/workers/personality/analyze-quest-responses/handler.go
package analyzequestresponses

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"personality-workers/internal/common/camunda"
	"personality-workers/internal/common/errors"
	"personality-workers/internal/common/logger"
	"personality-workers/internal/common/metrics"
	"personality-workers/internal/common/observability"
	"personality-workers/internal/common/validation"
	"personality-workers/internal/personality/analyzer"
	"personality-workers/internal/personality/features"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "analyze-quest-responses"
)

type Handler struct {
	config    *Config
	analyzer  *analyzer.Analyzer
	validator *validation.Validator
	obs       *observability.Observability
	reporter  *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, a *analyzer.Analyzer, v *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		analyzer:  a,
		validator: v,
		obs:       obs,
		reporter:  camunda.NewJobReporter(TaskType, obs, log),
		logger:    log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := h.reporter.Start(job)

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.reporter.Fail(client, job, timer, errors.NewParseError(err))
		return
	}
	if err := h.validator.ValidateJSON(TaskType, job.Variables); err != nil {
		h.reporter.Fail(client, job, timer, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.reporter.Fail(client, job, timer, err)
		return
	}
	h.reporter.Complete(client, job, timer, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if h.config.FailIncomplete && len(input.Responses) < analyzer.QuestResponseCount {
		return nil, errors.NewInsufficientInputError(
			fmt.Sprintf("got %d of %d quest responses", len(input.Responses), analyzer.QuestResponseCount))
	}

	start := time.Now()
	result := h.analyzer.AnalyzeQuestResponses(ctx, input.Responses, input.UserName)
	degraded := result.CompletionStatus != analyzer.StatusComplete
	h.obs.RecordAnalysis(ctx, "quest", features.ModeQuest, degraded, time.Since(start))

	if degraded {
		metrics.DegradedAnalyses.WithLabelValues(features.ModeQuest).Inc()
	} else if result.AvatarData != nil {
		metrics.ArchetypesAssigned.WithLabelValues(result.AvatarData.Archetype.Name).Inc()
	}

	return &Output{
		Analysis:      result,
		UserName:      result.UserName,
		ResponseCount: len(input.Responses),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
