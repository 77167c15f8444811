package orders

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/platform/httpx"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// Handler serves order ingestion and lookup.
type Handler struct {
	logger  *slog.Logger
	service *Service
	now     shared.Clock
}

// NewHandler builds an orders handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:  logger.With(slog.String("component", "orders")),
		service: service,
		now:     shared.SystemClock,
	}
}

// WithNow overrides the clock used to stamp orders.
func (h *Handler) WithNow(fn func() time.Time) *Handler {
	if fn != nil {
		h.now = fn
	}
	return h
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeCreateOrderRequest(r.Body)
	if err != nil {
		httpx.RespondError(w, h.logger, "Failed to create order", err)
		return
	}
	order, err := h.service.Create(r.Context(), req, h.now.Now())
	if err != nil {
		httpx.RespondError(w, h.logger, "Failed to create order", err)
		return
	}
	httpx.Success(w, http.StatusCreated, "Order created successfully", order.View())
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			verr := shared.NewValidationError()
			verr.Add("limit", "The limit field must be a positive integer.")
			httpx.RespondError(w, h.logger, "Failed to fetch orders", verr)
			return
		}
		limit = min(n, maxListLimit)
	}
	list, err := h.service.Latest(r.Context(), limit)
	if err != nil {
		httpx.RespondError(w, h.logger, "Failed to fetch orders", err)
		return
	}
	views := make([]OrderView, 0, len(list))
	for _, o := range list {
		views = append(views, o.View())
	}
	httpx.Success(w, http.StatusOK, "", views)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.RespondError(w, h.logger, "Order not found", shared.ErrNotFound)
		return
	}
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, h.logger, "Order not found", err)
		return
	}
	httpx.Success(w, http.StatusOK, "", order.View())
}

func (h *Handler) testBroadcast(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.CreateDemo(r.Context(), h.now.Now())
	if errors.Is(err, ErrEmptyCatalog) {
		httpx.Failure(w, http.StatusNotFound, "No products found. Run cmd/seed to load the demo catalog.", "")
		return
	}
	if err != nil {
		httpx.RespondError(w, h.logger, "Broadcast failed", err)
		return
	}
	httpx.Success(w, http.StatusCreated, "Test broadcast sent successfully!", order.View())
}
