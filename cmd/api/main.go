package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"recipeapi/internal/config"
	handlers "recipeapi/internal/http/handler"
	"recipeapi/internal/http/middleware"
	"recipeapi/internal/llm"
	"recipeapi/internal/logging"
	"recipeapi/internal/otel"
	"recipeapi/internal/service"
	"recipeapi/internal/storage"
)

const (
	serviceName     = "recipeapi"
	shutdownTimeout = 10 * time.Second
)

// @title Recipe Recommendation API
// @version 1.0
// @description Upload dietary data as CSV and get a recipe recommendation.
// @BasePath /
func main() {
	if err := run(); err != nil {
		slog.Error("server_exited", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logging.New(os.Stdout, cfg.Location())
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log, serviceName)
	if err != nil {
		return err
	}

	scratch, err := storage.New(cfg.Scratch, cfg.MinIO)
	if err != nil {
		return err
	}

	if cfg.LLM.APIKey == "" {
		log.Warn("openai_api_key_missing", "hint", "set OPENAI_API_KEY; recommendation calls will fail")
	}

	pipelineMetrics, err := service.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	uploads := service.NewUploadService(
		service.NewIngestor(scratch),
		service.NewRecommender(llm.NewClient(cfg.LLM), cfg.LLM, cfg.Prompt),
		pipelineMetrics,
	)
	orders := service.NewStubOrderService(log)

	app := handlers.NewApp(cfg, handlers.Dependencies{
		Scratch:     scratch,
		Uploads:     uploads,
		Orders:      orders,
		Logger:      log,
		HTTPMetrics: httpMetrics,
		Gatherer:    prometheus.DefaultGatherer,
	})

	addr := ":" + cfg.Port

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server_starting",
			"addr", addr,
			"scratch_backend", cfg.Scratch.Backend,
			"model", cfg.LLM.Model,
			"max_upload_bytes", cfg.Scratch.MaxUploadBytes,
		)
		return app.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("server_stopping")

		var errs []error
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			errs = append(errs, err)
		}

		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server_stopped")
	return nil
}
