// internal/personality/chat/chat.go
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"personality-workers/internal/common/logger"
)

const (
	StatusSuccess  = "success"
	StatusFallback = "fallback"

	DefaultCharacter = "TheBuilder"
	DefaultMaxTokens = 500
)

// Reply is the outcome of one chat turn. On failure Message holds the
// character's fallback line and Error the cause.
type Reply struct {
	Message       string `json:"message"`
	CharacterName string `json:"character_name"`
	Timestamp     string `json:"timestamp"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
}

// Turn is an incoming chat message with its context.
type Turn struct {
	Message       string
	CharacterName string
	Context       CharacterContext
	History       []Message
}

// Service answers chat turns in character.
type Service struct {
	personas  *Personas
	gateway   Gateway
	maxTokens int
	logger    logger.Logger
	now       func() time.Time
}

func NewService(personas *Personas, gateway Gateway, maxTokens int, log logger.Logger) *Service {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Service{
		personas:  personas,
		gateway:   gateway,
		maxTokens: maxTokens,
		logger:    log,
		now:       time.Now,
	}
}

// FormatHistory keeps non-blank messages. Any role other than "user" is
// sent as "assistant".
func FormatHistory(history []Message) []Message {
	out := make([]Message, 0, len(history))
	for _, m := range history {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		role := "assistant"
		if m.Role == "user" {
			role = "user"
		}
		out = append(out, Message{Role: role, Content: m.Content})
	}
	return out
}

// Reply never fails: gateway errors produce the fallback line. The reply
// names the persona that answered, which is the default one when the
// requested name is unknown.
func (s *Service) Reply(ctx context.Context, turn Turn) Reply {
	requested := turn.CharacterName
	if requested == "" {
		requested = DefaultCharacter
	}
	persona, found := s.personas.Lookup(requested)
	name := persona.Name
	if !found {
		s.logger.Warn("unknown character, using default persona", map[string]interface{}{
			"requested": requested,
			"character": name,
		})
	}

	messages := append(FormatHistory(turn.History), Message{Role: "user", Content: turn.Message})
	s.logger.Info("generating character reply", map[string]interface{}{
		"character": name,
		"messages":  len(messages),
	})

	text, err := s.gateway.Generate(ctx, Request{
		System:    s.personas.Prompt(name, turn.Context),
		Messages:  messages,
		MaxTokens: s.maxTokens,
	})

	reply := Reply{
		CharacterName: name,
		Timestamp:     s.now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		s.logger.Error("character reply failed", map[string]interface{}{
			"character": name,
			"error":     err.Error(),
			"timeout":   errors.Is(err, ErrChatTimeout),
		})
		reply.Message = s.personas.Fallback(requested)
		reply.Status = StatusFallback
		reply.Error = err.Error()
		return reply
	}

	reply.Message = text
	reply.Status = StatusSuccess
	return reply
}
