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
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/recommendations"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/weather"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	location, err := cfg.Location()
	if err != nil {
		logger.Error("resolve timezone", slog.Any("error", err))
		os.Exit(1)
	}

	dbpool, err := db.New(ctx, cfg.PGDSN, db.Options{MaxConns: cfg.PGMaxConns})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	if cfg.PGMigrate {
		if err := db.Migrate(ctx, dbpool); err != nil {
			logger.Error("migrate", slog.Any("error", err))
			os.Exit(1)
		}
	}

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
		logger.Error("init publisher", slog.String("driver", cfg.NotifyDriver), slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := closePublisher(); err != nil {
			logger.Warn("publisher close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	catalogRepo := catalog.NewRepository(dbpool)
	orderRepo := orders.NewRepository(dbpool)
	aggregator := analytics.NewAggregator(orderRepo, catalogRepo, location)
	broadcaster := notify.NewBroadcaster(publisher, cfg.NotifyChannel, aggregator)

	orderService := orders.NewService(orderRepo, catalogRepo, orders.ServiceConfig{
		Logger:   logger,
		Notifier: broadcaster,
		Recorder: metrics,
		Location: location,
	})

	live := weather.NewOpenWeather(weather.OpenWeatherConfig{
		BaseURL: cfg.WeatherBaseURL,
		APIKey:  cfg.WeatherAPIKey,
		City:    cfg.WeatherCity,
		Timeout: cfg.WeatherTimeout,
	})
	weatherProvider := weather.NewFallback(live, weather.NewMock(cfg.WeatherMockSeed), logger, metrics)
	engine := recommendations.NewEngine(orderRepo, catalogRepo, weatherProvider, location)

	redisOpts := cfg.Redis().QueueOpt()
	jobClient := jobs.NewClient(redisOpts)
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("job inspector close", slog.Any("error", err))
		}
	}()

	var stream *notify.Stream
	if cfg.NotifyDriver == app.NotifyDriverRedis {
		stream = notify.NewStream(redisClient, cfg.NotifyChannel, logger)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:                 logger,
		Config:                 cfg,
		Metrics:                metrics,
		HealthCheck:            dbpool.Ping,
		CatalogHandler:         catalog.NewHandler(logger, catalog.NewService(catalogRepo)),
		OrdersHandler:          orders.NewHandler(logger, orderService),
		AnalyticsHandler:       analytics.NewHandler(logger, aggregator),
		RecommendationsHandler: recommendations.NewHandler(logger, engine),
		JobHandler:             jobs.NewHandler(inspector, jobClient, logger),
		Stream:                 stream,
	})

	// WriteTimeout stays zero so /stream connections are not cut; the API
	// group enforces APP_REQUEST_TIMEOUT instead.
	server := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           router,
		ReadTimeout:       cfg.AppReadTimeout,
		ReadHeaderTimeout: cfg.AppReadTimeout,
	}
	if stream == nil {
		server.WriteTimeout = cfg.AppWriteTimeout
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("notify_driver", cfg.NotifyDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
