// internal/app/app.go
package app

import (
	"context"
	"fmt"

	"personality-workers/internal/common/cache"
	"personality-workers/internal/common/config"
	"personality-workers/internal/common/database"
	"personality-workers/internal/common/logger"
	"personality-workers/internal/personality/analyzer"
	"personality-workers/internal/personality/characters"
	"personality-workers/internal/personality/chat"
	"personality-workers/internal/personality/scoring"

	"go.uber.org/zap"
)

const redisConnectAttempts = 5

// NewLogger builds the process logger from the logging section.
func NewLogger(cfg config.LoggingConfig) (logger.Logger, *zap.Logger, error) {
	opts := logger.Options{Level: cfg.Level, Format: cfg.Format}
	if cfg.Output != "" {
		opts.Output = []string{cfg.Output}
	}
	return logger.NewFromOptions(opts)
}

// NewAnalyzer loads the scorer and the character catalog named in cfg.
func NewAnalyzer(cfg config.AnalyzerConfig, log logger.Logger) (*analyzer.Analyzer, error) {
	scorer, err := scoring.New(cfg.Scorer, cfg.ModelPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build scorer: %w", err)
	}

	catalog, err := characters.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load character catalog: %w", err)
	}

	a, err := analyzer.New(scorer, catalog, log)
	if err != nil {
		return nil, err
	}
	log.Info("analyzer ready", map[string]interface{}{
		"scorer":     scorer.Name(),
		"characters": catalog.Len(),
	})
	return a, nil
}

// NewCache connects to Redis when an address is configured. The returned
// close func is never nil.
func NewCache(ctx context.Context, cfg *config.Config, log logger.Logger) (*cache.AnalysisCache, func(), error) {
	if !cfg.CacheEnabled() {
		log.Info("analysis cache disabled", nil)
		return cache.New(nil, cfg.Analyzer.CacheTTL, log), func() {}, nil
	}

	rc, err := database.ConnectRedis(ctx, cfg.Database.Redis, redisConnectAttempts, log)
	if err != nil {
		return nil, func() {}, err
	}
	closeFn := func() {
		if err := rc.Close(); err != nil {
			log.Warn("failed to close redis", map[string]interface{}{"error": err.Error()})
		}
	}
	return cache.New(rc.GetClient(), cfg.Analyzer.CacheTTL, log), closeFn, nil
}

// NewChatService wires the persona prompts to the generation gateway.
func NewChatService(cc chat.ClientConfig, maxTokens int, log logger.Logger) (*chat.Service, error) {
	personas, err := chat.DefaultPersonas()
	if err != nil {
		return nil, fmt.Errorf("failed to load personas: %w", err)
	}
	return chat.NewService(personas, chat.NewClient(cc, log), maxTokens, log), nil
}
