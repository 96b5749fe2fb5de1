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

	// routes without a session
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/usernames", h.getRecentUsernames)
		r.Post("/api/usernames", h.pushUsername)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes that carry a session token; the token is extracted here and the
	// handlers decide what an absent or stale token means for their endpoint
	router.Group(func(r chi.Router) {
		r.Use(h.withSessionToken)
		r.Post("/api/session/check", h.checkSession)
		r.Post("/api/session/logout", h.logout)
		r.Post("/api/progress/sync", h.syncProgress)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
