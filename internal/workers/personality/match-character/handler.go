// internal/workers/personality/match-character/handler.go
package matchcharacter

import (
	"context"
	"encoding/json"

	"personality-workers/internal/common/camunda"
	"personality-workers/internal/common/errors"
	"personality-workers/internal/common/logger"
	"personality-workers/internal/common/metrics"
	"personality-workers/internal/common/observability"
	"personality-workers/internal/common/validation"
	"personality-workers/internal/personality/analyzer"
	"personality-workers/internal/personality/bigfive"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "match-character"
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
	var (
		v      bigfive.Vector
		source string
	)
	switch {
	case input.PersonalityScores != nil:
		var unknown []string
		v, unknown = bigfive.FromMap(input.PersonalityScores)
		for _, name := range unknown {
			h.logger.Warn("unknown trait skipped", map[string]interface{}{"trait": name})
		}
		source = SourceScores
	case input.SelectedTraits != nil:
		v = h.analyzer.MapUITraits(input.SelectedTraits)
		source = SourceUITraits
	default:
		return nil, errors.NewInputValidationError("personality_scores or selected_traits is required")
	}

	match := h.analyzer.MatchCharacter(v)
	metrics.CharactersMatched.WithLabelValues(match.CharacterName, match.Confidence).Inc()

	h.logger.Info("character matched", map[string]interface{}{
		"character":  match.CharacterName,
		"similarity": match.Similarity,
		"confidence": match.Confidence,
		"source":     source,
	})
	return &Output{Match: match, Vector: v, Source: source}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
