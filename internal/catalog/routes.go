package catalog

import "github.com/go-chi/chi/v5"

// MountRoutes registers the catalog endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/products", h.list)
	r.Get("/products/{id}", h.show)
}
