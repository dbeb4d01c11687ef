package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dgallion1/contentkit/internal/api"
	"github.com/dgallion1/contentkit/internal/config"
	"github.com/dgallion1/contentkit/internal/content"
	"github.com/dgallion1/contentkit/internal/metrics"
	"github.com/dgallion1/contentkit/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := newLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewPrometheusRecorder(reg)

	// Initialize pipeline.
	renderer := pipeline.NewRenderer(cfg.StrictTabs, rec, pipeline.NewRenderStats(cfg.StatsWindow), log)
	orch := pipeline.NewOrchestrator(cfg, renderer, rec, log)
	orch.Start(ctx)

	var store *content.Store
	if cfg.ContentDir != "" {
		store = content.NewStore(cfg.ContentDir, renderer, content.StoreOptions{
			Concurrency:  cfg.RenderConcurrency,
			ExcerptWords: cfg.ExcerptWords,
			Metrics:      rec,
			Log:          log,
		})
		if err := store.Reload(ctx); err != nil {
			log.Error("initial content load failed", "dir", cfg.ContentDir, "error", err)
			os.Exit(1)
		}
		if cfg.WatchContent {
			go func() {
				if err := content.Watch(ctx, store, log); err != nil {
					log.Error("content watcher stopped", "error", err)
				}
			}()
		}
	}

	// Initialize HTTP server.
	srv := api.NewServer(orch, store, rec, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()
		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting contentkit", "port", cfg.Port, "content_dir", cfg.ContentDir, "strict_tabs", cfg.StrictTabs)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	level, _ := config.ParseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
