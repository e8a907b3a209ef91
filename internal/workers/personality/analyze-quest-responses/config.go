// internal/workers/personality/analyze-quest-responses/config.go
package analyzequestresponses

import (
	"time"

	"personality-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// FailIncomplete throws INSUFFICIENT_INPUT instead of completing with a
	// failed analysis when fewer than four responses arrive.
	FailIncomplete bool
}

func LoadConfig(wc config.WorkerConfig) *Config {
	c := &Config{Timeout: 10 * time.Second}
	if wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	return c
}
