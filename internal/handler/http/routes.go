package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	router.Get("/api/version", h.getServerVersion)

	// the gate authenticates every call below; withSessionToken only carries
	// the raw token and the identity it resolves to
	router.Group(func(r chi.Router) {
		r.Use(h.withSessionToken)

		r.Get("/api/auth/me", h.me)

		r.Get("/api/vault", h.listItems)
		r.Post("/api/vault", h.createItem)
		r.Get("/api/vault/salt", h.getSalt)
		r.Get("/api/vault/{id}", h.getItem)
		r.Put("/api/vault/{id}", h.updateItem)
		r.Delete("/api/vault/{id}", h.deleteItem)
	})

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(routeNotFound)

	return router
}
