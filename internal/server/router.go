package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smart-calculator/internal/calculator"
	"smart-calculator/internal/explainer"
	"smart-calculator/internal/handlers"
	"smart-calculator/internal/observability"
	"smart-calculator/internal/session"
	"smart-calculator/internal/web"
)

// NewRouter wires the health and metrics endpoints, the web page and the JSON
// API. Everything except /health and /metrics runs inside a session.
func NewRouter(sessions *session.Store, ai *explainer.Explainer) (http.Handler, error) {
	page, err := web.NewPage(ai)
	if err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(sessions))

		page.RegisterRoutes(r)
		calculator.RegisterRoutes(r)
		explainer.RegisterRoutes(r, explainer.NewHandler(ai))
		r.Delete("/session", session.EndHandler(sessions))
	})

	return r, nil
}
