package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/heartmarshall/refbook-backend/internal/transport/middleware"
)

// RouterDeps is everything NewRouter mounts.
type RouterDeps struct {
	Refbooks   *RefbookHandler
	Health     *HealthHandler
	Logger     *slog.Logger
	Middleware []middleware.Middleware // applied after request id, logging and recovery
}

// NewRouter builds the HTTP handler. Every route also matches with a
// trailing slash, and {id} only matches decimal digits so that anything else
// is a 404.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
	)
	for _, mw := range deps.Middleware {
		r.Use(mw)
	}
	r.Use(chimw.StripSlashes)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllow)
	})

	r.Get("/live", deps.Health.Live)
	r.Get("/ready", deps.Health.Ready)
	r.Get("/health", deps.Health.Health)

	r.Route("/refbooks", func(r chi.Router) {
		r.Get("/", deps.Refbooks.List)
		r.Get("/{id:[0-9]+}/elements", deps.Refbooks.Elements)
		r.Get("/{id:[0-9]+}/check-element", deps.Refbooks.CheckElement)
	})

	return r
}
