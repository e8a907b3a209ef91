// internal/workers/personality/character-chat/config.go
package characterchat

import (
	"time"

	"personality-workers/internal/common/config"
	"personality-workers/internal/personality/chat"
)

type Config struct {
	Timeout   time.Duration
	MaxTokens int
	Client    chat.ClientConfig
}

func LoadConfig(wc config.WorkerConfig, genai config.GenAIConfig) *Config {
	c := &Config{
		Timeout:   30 * time.Second,
		MaxTokens: genai.MaxTokens,
		Client: chat.ClientConfig{
			BaseURL:     genai.BaseURL,
			APIKey:      genai.APIKey,
			MaxRetries:  genai.MaxRetries,
			MaxFailures: genai.BreakerFailures,
			Cooldown:    config.GetDuration(genai.BreakerCooldown),
		},
	}
	if genai.Timeout > 0 {
		c.Timeout = config.GetDuration(genai.Timeout)
	}
	return c
}
