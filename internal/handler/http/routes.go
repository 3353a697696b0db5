package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/session/", h.openSession)
	})

	// routes requiring a valid session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/sync/delta", h.getDelta)
		r.Post("/api/sync/delta", h.pushDelta)
		r.Get("/api/sync/watermark", h.getWatermark)

		r.Post("/api/certificates/", h.issueCertificate)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
