// internal/common/cache/cache.go
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"personality-workers/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "personality:analysis:"

// AnalysisCache stores JSON-encoded analysis results in Redis. A nil client
// disables it: lookups miss and stores are dropped.
type AnalysisCache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func New(rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *AnalysisCache {
	return &AnalysisCache{rdb: rdb, ttl: ttl, logger: log}
}

func (c *AnalysisCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Key derives a stable key from the analysis inputs. Parts are length
// prefixed so different splits of the same bytes never collide.
func Key(kind string, parts ...string) string {
	h := sha256.New()
	for _, p := range append([]string{kind}, parts...) {
		fmt.Fprintf(h, "%d:%s;", len(p), p)
	}
	return keyPrefix + kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Get decodes the cached value into out. It reports false on a miss.
func (c *AnalysisCache) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		c.logger.Warn("discarding undecodable cache entry", map[string]interface{}{"key": key, "error": err.Error()})
		return false, nil
	}
	return true, nil
}

func (c *AnalysisCache) Set(ctx context.Context, key string, value interface{}) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
