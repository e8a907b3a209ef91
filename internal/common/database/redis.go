// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"personality-workers/internal/common/config"
	"personality-workers/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the Redis client backing the analysis cache.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates a client without connecting.
func NewRedis(cfg config.RedisConfig) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	return &RedisClient{Client: rdb}
}

// ConnectRedis creates a client and pings it with backoff until it answers
// or attempts run out.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, attempts int, log logger.Logger) (*RedisClient, error) {
	c := NewRedis(cfg)
	delay := 500 * time.Millisecond

	var err error
	for i := 1; i <= attempts; i++ {
		if err = c.Ping(ctx); err == nil {
			log.Info("redis connected", map[string]interface{}{"address": cfg.Address, "attempt": i})
			return c, nil
		}
		log.Warn("redis not ready", map[string]interface{}{"address": cfg.Address, "attempt": i, "error": err.Error()})
		if i == attempts {
			break
		}
		select {
		case <-time.After(delay):
			delay *= 2
		case <-ctx.Done():
			_ = c.Close()
			return nil, ctx.Err()
		}
	}
	_ = c.Close()
	return nil, fmt.Errorf("redis at %s unavailable after %d attempts: %w", cfg.Address, attempts, err)
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// GetClient returns the underlying *redis.Client.
func (c *RedisClient) GetClient() *redis.Client {
	return c.Client
}
