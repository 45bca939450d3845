package explainer

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the AI endpoints under /ai. The router must run
// session.Middleware.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/ai", func(r chi.Router) {
		r.Get("/explain/prompt", h.Prompt)
		r.Post("/explain", h.Explain)
		r.Post("/ask", h.Ask)
	})
}
