// internal/workers/personality/character-chat/handler.go
package characterchat

import (
	"context"
	"encoding/json"

	"personality-workers/internal/common/camunda"
	"personality-workers/internal/common/errors"
	"personality-workers/internal/common/logger"
	"personality-workers/internal/common/metrics"
	"personality-workers/internal/common/observability"
	"personality-workers/internal/common/validation"
	"personality-workers/internal/personality/chat"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "character-chat"
)

// Handler never fails a job on gateway errors: the reply then carries the
// character's fallback line with status "fallback".
type Handler struct {
	config    *Config
	service   *chat.Service
	validator *validation.Validator
	reporter  *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, service *chat.Service, v *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		service:   service,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	reply := h.service.Reply(ctx, chat.Turn{
		Message:       input.Message,
		CharacterName: input.CharacterName,
		Context:       input.CharacterContext,
		History:       input.ConversationHistory,
	})
	metrics.ChatReplies.WithLabelValues(reply.CharacterName, reply.Status).Inc()
	return &reply, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
