package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/platform/httpx"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// Handler serves the read-only catalog endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a catalog handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger.With(slog.String("component", "catalog")), service: service}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		httpx.RespondError(w, h.logger, "Failed to fetch products", err)
		return
	}
	httpx.Success(w, http.StatusOK, "", views(products))
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.RespondError(w, h.logger, "Product not found", shared.ErrNotFound)
		return
	}
	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, h.logger, "Product not found", err)
		return
	}
	httpx.Success(w, http.StatusOK, "", product.View())
}
