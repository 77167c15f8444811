package recommendations

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/platform/httpx"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// Handler serves recommendation bundles.
type Handler struct {
	logger *slog.Logger
	engine *Engine
	now    shared.Clock
}

// NewHandler builds a recommendations handler.
func NewHandler(logger *slog.Logger, engine *Engine) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger: logger.With(slog.String("component", "recommendations")),
		engine: engine,
		now:    shared.SystemClock,
	}
}

// WithNow overrides the clock.
func (h *Handler) WithNow(fn func() time.Time) *Handler {
	if fn != nil {
		h.now = fn
	}
	return h
}

// MountRoutes registers GET /recommendations.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/recommendations", h.generate)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.engine.Generate(r.Context(), h.now.Now())
	if err != nil {
		httpx.RespondError(w, h.logger, "Failed to generate recommendations", err)
		return
	}
	httpx.Success(w, http.StatusOK, "", bundle)
}
