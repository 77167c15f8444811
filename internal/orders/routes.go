package orders

import "github.com/go-chi/chi/v5"

// MountRoutes registers the order endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/orders", h.create)
	r.Get("/orders", h.list)
	r.Get("/orders/{id}", h.show)
	r.Post("/broadcast/test", h.testBroadcast)
}
