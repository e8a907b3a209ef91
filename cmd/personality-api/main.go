// cmd/personality-api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"personality-workers/internal/api"
	"personality-workers/internal/app"
	"personality-workers/internal/common/config"
	"personality-workers/internal/common/logger"
	"personality-workers/internal/common/observability"
	"personality-workers/internal/common/validation"
	"personality-workers/internal/personality/chat"

	cc "personality-workers/internal/workers/personality/character-chat"
)

const shutdownTimeout = 15 * time.Second

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	log, zapLog, err := app.NewLogger(cfg.Logging)
	if err != nil {
		bootLog.Fatal("logger init failed", zap.Error(err))
	}
	defer func() { _ = zapLog.Sync() }()

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	obs := observability.New("personality-api", log)
	defer obs.Shutdown()

	a, err := app.NewAnalyzer(cfg.Analyzer, log)
	if err != nil {
		zapLog.Fatal("analyzer init failed", zap.Error(err))
	}

	validator, err := validation.New()
	if err != nil {
		zapLog.Fatal("schema load failed", zap.Error(err))
	}

	var chatService *chat.Service
	if cfg.APIs.GenAI.BaseURL != "" {
		chatCfg := cc.LoadConfig(config.GetWorkerConfig(cfg, cc.TaskType), cfg.APIs.GenAI)
		chatService, err = app.NewChatService(chatCfg.Client, chatCfg.MaxTokens, log)
		if err != nil {
			zapLog.Fatal("chat init failed", zap.Error(err))
		}
	} else {
		log.Warn("apis.genai.base_url not set, /api/chat disabled", nil)
	}

	server := api.NewServer(api.Options{
		Analyzer:      a,
		Validator:     validator,
		Chat:          chatService,
		Observability: obs,
		Config:        cfg.HTTP,
		Logger:        log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("personality api listening", map[string]interface{}{
			"address": cfg.HTTP.Address,
			"chat":    chatService != nil,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down personality api", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
