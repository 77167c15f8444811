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

	"github.com/hibiken/asynq"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/analytics"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/app"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/catalog"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/notify"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/observability"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/orders"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/platform/cache"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/platform/db"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg).With(slog.String("process", "worker"))
	location, err := cfg.Location()
	if err != nil {
		logger.Error("resolve timezone", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN, db.Options{MaxConns: cfg.PGMaxConns})
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.Redis())
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	publisher, closePublisher, err := app.NewPublisher(cfg, redisClient, logger)
	if err != nil {
		logger.Error("init publisher", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := closePublisher(); err != nil {
			logger.Warn("publisher close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	aggregator := analytics.NewAggregator(orders.NewRepository(pool), catalog.NewRepository(pool), location)
	broadcaster := notify.NewBroadcaster(publisher, cfg.NotifyChannel, aggregator)
	broadcastJob := jobs.NewAnalyticsBroadcastJob(broadcaster, logger, metrics.Jobs())

	broadcastTask, err := jobs.NewAnalyticsBroadcastTask("cron")
	if err != nil {
		logger.Error("build broadcast task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: cfg.Redis().QueueOpt(),
		Logger:    logger,
		Location:  location,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskAnalyticsBroadcast, Handler: broadcastJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.BroadcastIntervalCron, Task: broadcastTask, Options: []asynq.Option{asynq.MaxRetry(1), asynq.Timeout(30 * time.Second)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	metricsServer := &http.Server{Addr: cfg.WorkerMetricsAddr, Handler: metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server", slog.Any("error", err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
