package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/app"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/catalog"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/platform/db"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg).With(slog.String("process", "seed"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.New(ctx, cfg.PGDSN, db.Options{MaxConns: 2})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("applying migrations")
	if err := db.Migrate(ctx, pool); err != nil {
		logger.Error("migrate", slog.Any("error", err))
		os.Exit(1)
	}

	inserted, err := catalog.NewRepository(pool).Seed(ctx, catalog.DemoCatalog())
	if err != nil {
		logger.Error("seed catalog", slog.Any("error", err))
		os.Exit(1)
	}
	if inserted == 0 {
		logger.Info("catalog already populated, nothing seeded")
		return
	}
	logger.Info("seeded demo catalog", slog.Int("products", inserted))
}
