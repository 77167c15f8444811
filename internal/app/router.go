package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/analytics"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/catalog"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/notify"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/observability"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/orders"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/platform/httpx"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/recommendations"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/jobs"
)

// RouterParams groups dependencies for building the HTTP router. Nil
// handlers are skipped.
type RouterParams struct {
	Logger                 *slog.Logger
	Config                 *Config
	Metrics                *observability.Metrics
	HealthCheck            func(context.Context) error
	CatalogHandler         *catalog.Handler
	OrdersHandler          *orders.Handler
	AnalyticsHandler       *analytics.Handler
	RecommendationsHandler *recommendations.Handler
	JobHandler             *jobs.Handler
	Stream                 *notify.Stream
}

// NewRouter constructs the chi.Router with the service defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if params.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := params.HealthCheck(ctx); err != nil {
				if params.Logger != nil {
					params.Logger.Warn("health check failed", slog.Any("error", err))
				}
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	if params.Stream != nil {
		params.Stream.MountRoutes(r)
	}

	r.Group(func(r chi.Router) {
		for _, mw := range APIMiddleware(params.Config) {
			r.Use(mw)
		}
		if params.CatalogHandler != nil {
			params.CatalogHandler.MountRoutes(r)
		}
		if params.OrdersHandler != nil {
			params.OrdersHandler.MountRoutes(r)
		}
		if params.AnalyticsHandler != nil {
			params.AnalyticsHandler.MountRoutes(r)
		}
		if params.RecommendationsHandler != nil {
			params.RecommendationsHandler.MountRoutes(r)
		}
		if params.JobHandler != nil {
			params.JobHandler.MountRoutes(r)
		}
	})

	return r
}
