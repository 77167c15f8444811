package analytics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/platform/httpx"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// Handler exposes analytics over HTTP.
type Handler struct {
	logger     *slog.Logger
	aggregator *Aggregator
	now        shared.Clock
}

// NewHandler builds an analytics handler.
func NewHandler(logger *slog.Logger, aggregator *Aggregator) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:     logger.With(slog.String("component", "analytics")),
		aggregator: aggregator,
		now:        shared.SystemClock,
	}
}

// WithNow overrides the clock.
func (h *Handler) WithNow(fn func() time.Time) *Handler {
	if fn != nil {
		h.now = fn
	}
	return h
}

// MountRoutes registers the analytics endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/analytics", h.snapshot)
	r.Get("/analytics/daily", h.daily)
	r.Get("/analytics/stats", h.stats)
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.aggregator.Snapshot(r.Context(), h.now.Now())
	if err != nil {
		httpx.RespondError(w, h.logger, "Failed to fetch analytics", err)
		return
	}
	httpx.Success(w, http.StatusOK, "", snap)
}

func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr := shared.NewValidationError()
			verr.Add("days", "The days field must be an integer.")
			httpx.RespondError(w, h.logger, "Failed to fetch analytics", verr)
			return
		}
		days = n
	}
	series, err := h.aggregator.DailySeries(r.Context(), h.now.Now(), days)
	if err != nil {
		httpx.RespondError(w, h.logger, "Failed to fetch analytics", err)
		return
	}
	httpx.Success(w, http.StatusOK, "", series)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.aggregator.DailyStats(r.Context(), h.now.Now())
	if err != nil {
		httpx.RespondError(w, h.logger, "Failed to fetch analytics", err)
		return
	}
	httpx.Success(w, http.StatusOK, "", stats)
}
