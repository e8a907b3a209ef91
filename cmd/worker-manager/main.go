// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"personality-workers/internal/app"
	"personality-workers/internal/common/cache"
	"personality-workers/internal/common/camunda"
	"personality-workers/internal/common/config"
	"personality-workers/internal/common/logger"
	"personality-workers/internal/common/observability"
	"personality-workers/internal/common/validation"
	"personality-workers/internal/personality/analyzer"

	apt "personality-workers/internal/workers/personality/analyze-personality-text"
	aqr "personality-workers/internal/workers/personality/analyze-quest-responses"
	cc "personality-workers/internal/workers/personality/character-chat"
	ga "personality-workers/internal/workers/personality/generate-avatar"
	mut "personality-workers/internal/workers/personality/map-ui-traits"
	mc "personality-workers/internal/workers/personality/match-character"
)

const shutdownTimeout = 30 * time.Second

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}
	if err := config.ValidateForWorkers(cfg); err != nil {
		bootLog.Fatal("invalid worker config", zap.Error(err))
	}

	log, zapLog, err := app.NewLogger(cfg.Logging)
	if err != nil {
		bootLog.Fatal("logger init failed", zap.Error(err))
	}
	defer func() { _ = zapLog.Sync() }()

	log = log.WithFields(map[string]interface{}{"service": cfg.App.Name, "environment": cfg.App.Environment})
	log.Info("starting worker manager", map[string]interface{}{"broker": cfg.Camunda.BrokerAddress})

	obs := observability.New("worker-manager", log)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(cfg.Camunda))
	if err != nil {
		zapLog.Fatal("zeebe client init failed", zap.Error(err))
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Error("error closing zeebe client", map[string]interface{}{"error": err.Error()})
		}
	}()
	log.Info("connected to zeebe", map[string]interface{}{"broker": cfg.Camunda.BrokerAddress})

	analysisCache, closeCache, err := app.NewCache(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("redis init failed", zap.Error(err))
	}
	defer closeCache()

	a, err := app.NewAnalyzer(cfg.Analyzer, log)
	if err != nil {
		zapLog.Fatal("analyzer init failed", zap.Error(err))
	}

	validator, err := validation.New()
	if err != nil {
		zapLog.Fatal("schema load failed", zap.Error(err))
	}

	pool := camunda.NewPool(client.GetClient(), log)
	registerWorkers(cfg, pool, a, analysisCache, validator, obs, log)

	running := pool.Running()
	sort.Strings(running)
	log.Info("workers registered", map[string]interface{}{"count": len(running), "taskTypes": running})

	srv := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           healthMux(pool),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"address": cfg.Metrics.Address})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, stopping workers", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	pool.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("health/metrics server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	log.Info("worker manager stopped", nil)
}

func registerWorkers(
	cfg *config.Config,
	pool *camunda.Pool,
	a *analyzer.Analyzer,
	analysisCache *cache.AnalysisCache,
	v *validation.Validator,
	obs *observability.Observability,
	log logger.Logger,
) {
	{
		taskType := apt.TaskType
		wc := config.GetWorkerConfig(cfg, taskType)
		pool.Start(taskType, wc, apt.NewHandler(apt.LoadConfig(wc), a, analysisCache, v, obs, log))
	}
	{
		taskType := aqr.TaskType
		wc := config.GetWorkerConfig(cfg, taskType)
		qc := aqr.LoadConfig(wc)
		qc.FailIncomplete = cfg.Analyzer.StrictQuest
		pool.Start(taskType, wc, aqr.NewHandler(qc, a, v, obs, log))
	}
	{
		taskType := ga.TaskType
		wc := config.GetWorkerConfig(cfg, taskType)
		pool.Start(taskType, wc, ga.NewHandler(ga.LoadConfig(wc), a, v, obs, log))
	}
	{
		taskType := mc.TaskType
		wc := config.GetWorkerConfig(cfg, taskType)
		pool.Start(taskType, wc, mc.NewHandler(mc.LoadConfig(wc), a, v, obs, log))
	}
	{
		taskType := mut.TaskType
		wc := config.GetWorkerConfig(cfg, taskType)
		pool.Start(taskType, wc, mut.NewHandler(mut.LoadConfig(wc), a, v, obs, log))
	}
	{
		taskType := cc.TaskType
		wc := config.GetWorkerConfig(cfg, taskType)
		if !wc.Enabled {
			pool.Start(taskType, wc, nil)
			return
		}
		chatCfg := cc.LoadConfig(wc, cfg.APIs.GenAI)
		service, err := app.NewChatService(chatCfg.Client, chatCfg.MaxTokens, log)
		if err != nil {
			log.Error("character chat disabled", map[string]interface{}{"error": err.Error()})
			return
		}
		pool.Start(taskType, wc, cc.NewHandler(chatCfg, service, v, obs, log))
	}
}

func healthMux(pool *camunda.Pool) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		running := pool.Running()
		sort.Strings(running)
		status, code := "ready", http.StatusOK
		if len(running) == 0 {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]interface{}{
			"status":  status,
			"workers": running,
			"time":    time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
