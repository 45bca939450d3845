package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"smart-calculator/internal/config"
	"smart-calculator/internal/explainer"
	"smart-calculator/internal/observability"
	"smart-calculator/internal/provider"
	"smart-calculator/internal/server"
	"smart-calculator/internal/session"
)

func main() {

	ctx := context.Background()

	// Environment
	if err := loadDotEnv(); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	err = observability.InitLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	logShutdown, err := observability.InitLogging(ctx)
	if err != nil {
		panic(err)
	}
	defer logShutdown(ctx)

	// Tracing
	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		panic(err)
	}
	defer traceShutdown(ctx)

	// Metrics
	metricShutdown, err := initMetrics(ctx)
	if err != nil {
		panic(err)
	}
	defer metricShutdown(ctx)

	// AI provider; a missing credential only disables the AI panels.
	ai, err := provider.New(cfg.AI)
	switch {
	case errors.Is(err, provider.ErrNoCredential):
		observability.Logger.Warn("AI provider disabled: no credential configured",
			zap.String("provider", cfg.AI.Provider),
		)
	case err != nil:
		panic(err)
	}

	explain := explainer.New(ai)

	// Sessions
	sessions := session.NewStore(cfg.SessionTTL, cfg.HistorySize)
	prometheus.MustRegister(session.NewActiveCollector(sessions))

	// Router
	router, err := server.NewRouter(sessions, explain)
	if err != nil {
		panic(err)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("ai_provider", explain.ProviderName()),
			zap.String("ai_model", cfg.AI.Model),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()

	waitForShutdown(srv)
}

func waitForShutdown(srv *http.Server) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("server shutdown", zap.Error(err))
	}
}
