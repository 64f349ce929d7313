package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eternisai/listing-optimizer/internal/config"
	"github.com/eternisai/listing-optimizer/internal/logger"
	"github.com/eternisai/listing-optimizer/internal/metrics"
	"github.com/eternisai/listing-optimizer/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(logger.FromConfig(cfg.LogLevel, cfg.LogFormat))
	mainLog := appLogger.WithComponent("main")

	mainLog.Info("setting gin mode", "mode", cfg.GinMode)
	gin.SetMode(cfg.GinMode)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(registry)

	handler := server.NewOptimizerHandler(cfg, appLogger, recorder)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: server.NewHTTPHandler(server.Options{
			Handler:     handler,
			Logger:      appLogger,
			Metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			CORSOrigins: cfg.CORSOrigins(),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		mainLog.Info("🔁 listing optimizer listening", "addr", srv.Addr, "model", cfg.Completion.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mainLog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	mainLog.Info("🛑 shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ServerShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		mainLog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	mainLog.Info("✅ server exited")
}
