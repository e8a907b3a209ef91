// internal/workers/personality/map-ui-traits/handler.go
package mapuitraits

import (
	"context"
	"encoding/json"
	"sort"

	"personality-workers/internal/common/camunda"
	"personality-workers/internal/common/errors"
	"personality-workers/internal/common/logger"
	"personality-workers/internal/common/observability"
	"personality-workers/internal/common/validation"
	"personality-workers/internal/personality/analyzer"
	"personality-workers/internal/personality/uitraits"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "map-ui-traits"
)

type Handler struct {
	config    *Config
	analyzer  *analyzer.Analyzer
	validator *validation.Validator
	reporter  *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, a *analyzer.Analyzer, v *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		analyzer:  a,
		validator: v,
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	var unknown []string
	for name := range input.SelectedTraits {
		if !uitraits.Known(name) {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	if len(unknown) > 0 {
		h.logger.Warn("unknown ui traits ignored", map[string]interface{}{"traits": unknown})
	}

	return &Output{
		PersonalityScores: h.analyzer.MapUITraits(input.SelectedTraits),
		UnknownTraits:     unknown,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
