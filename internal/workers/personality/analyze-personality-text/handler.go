// internal/workers/personality/analyze-personality-text/handler.go
package analyzepersonalitytext

import (
	"context"
	"encoding/json"
	"time"

	"personality-workers/internal/common/cache"
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
	TaskType = "analyze-personality-text"
)

type Handler struct {
	config    *Config
	analyzer  *analyzer.Analyzer
	cache     *cache.AnalysisCache
	validator *validation.Validator
	obs       *observability.Observability
	reporter  *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, a *analyzer.Analyzer, c *cache.AnalysisCache, v *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		analyzer:  a,
		cache:     c,
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
	mode := input.Mode
	if mode == "" {
		mode = features.ModeGeneral
	}
	key := cacheKey(mode, input)

	var cached analyzer.TextAnalysis
	hit, err := h.cache.Get(ctx, key, &cached)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		h.logger.Warn("analysis cache read failed", map[string]interface{}{"error": err.Error()})
	case hit:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return &Output{TextAnalysis: &cached, Cached: true}, nil
	case h.cache.Enabled():
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	result := h.analyzer.AnalyzeText(ctx, input.Text, mode, input.Context)
	h.obs.RecordAnalysis(ctx, "text", mode, result.Degraded, time.Since(start))

	if result.Degraded {
		metrics.DegradedAnalyses.WithLabelValues(mode).Inc()
	} else if err := h.cache.Set(ctx, key, result); err != nil {
		h.logger.Warn("analysis cache write failed", map[string]interface{}{"error": err.Error()})
	}
	if result.AvatarData != nil {
		metrics.ArchetypesAssigned.WithLabelValues(result.AvatarData.Archetype.Name).Inc()
	}

	h.logger.Info("text analyzed", map[string]interface{}{
		"analysisId": result.AnalysisID,
		"mode":       mode,
		"textLength": result.TextLength,
		"degraded":   result.Degraded,
	})
	return &Output{TextAnalysis: result}, nil
}

func cacheKey(mode string, input *Input) string {
	parts := make([]string, 0, len(input.Context)*2+2)
	parts = append(parts, mode)
	for _, m := range input.Context {
		parts = append(parts, m.Role, m.Content)
	}
	parts = append(parts, input.Text)
	return cache.Key("text", parts...)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
