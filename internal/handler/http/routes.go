package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withRateLimit, withGZip)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	router.Get("/api/version/", h.getServerVersion)

	router.Route("/api/connectivity", func(r chi.Router) {
		r.Get("/", h.getConnectivity)
		r.With(h.withHashCheck).Put("/", h.setConnectivity)
	})

	router.Route("/api/accounts/{accountID}", func(r chi.Router) {
		r.Use(h.withAccount)

		r.Get("/sync/status", h.getSyncStatus)
		r.Get("/sync/stats", h.getStats)
		r.Post("/sync/trigger", h.triggerSync)
		r.Post("/sync/retry", h.retryFailed)

		r.Get("/journal", h.listJournal)
		r.Delete("/journal/synced", h.clearSyncedEntries)

		r.Get("/conflicts", h.getConflicts)
		r.Get("/conflicts/{conflictID}", h.getConflict)

		r.Get("/records/{table}", h.selectRecords)
		r.Get("/records/{table}/{recordID}", h.selectRecord)
		r.Delete("/records/{table}/{recordID}", h.deleteRecord)

		// routes with a request body
		r.Group(func(r chi.Router) {
			r.Use(h.withHashCheck)

			r.Post("/conflicts/{conflictID}/resolve", h.resolveConflict)
			r.Post("/pull", h.pullData)
			r.Post("/records/{table}", h.insertRecord)
			r.Put("/records/{table}/{recordID}", h.updateRecord)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
