// internal/workers/personality/map-ui-traits/config.go
package mapuitraits

import (
	"time"

	"personality-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(wc config.WorkerConfig) *Config {
	c := &Config{Timeout: 5 * time.Second}
	if wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	return c
}
