package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/heartmarshall/parla-dictionary/internal/transport/middleware"
)

// RouterDeps are the pieces NewRouter wires together. CORS and RateLimit
// may be nil.
type RouterDeps struct {
	Logger     *slog.Logger
	Health     *HealthHandler
	Dictionary *DictionaryHandler
	Auth       middleware.Middleware
	CORS       middleware.Middleware
	RateLimit  middleware.Middleware
}

// NewRouter builds the HTTP routing tree: unauthenticated probes at the
// root, the dictionary API under /api behind Auth.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Chain(
		middleware.RequestID(),
		chimiddleware.RealIP,
		middleware.Recovery(deps.Logger),
		deps.CORS,
	))

	r.Get("/live", deps.Health.Live)
	r.Get("/ready", deps.Health.Ready)
	r.Get("/health", deps.Health.Health)

	r.Route("/api/dictionary", func(r chi.Router) {
		r.Use(middleware.Chain(deps.Auth, middleware.Logger(deps.Logger), deps.RateLimit))

		r.Get("/", deps.Dictionary.Get)
		r.Post("/load", deps.Dictionary.Load)
		r.Post("/refresh", deps.Dictionary.Refresh)
		r.Get("/lookup", deps.Dictionary.Lookup)

		r.Route("/words", func(r chi.Router) {
			r.Get("/", deps.Dictionary.ListWords)
			r.Post("/", deps.Dictionary.AddWord)
			r.Patch("/{id}", deps.Dictionary.UpdateWord)
			r.Delete("/{id}", deps.Dictionary.DeleteWord)
		})
	})

	return r
}
