package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix. The router must run session.Middleware.
func RegisterRoutes(r chi.Router) {
	r.Route("/calculator", func(r chi.Router) {
		r.Get("/history", History)
		r.Delete("/history", ClearHistory)
		r.Post("/chain", Chain)
		r.Post("/{operation}", Calculation)
	})
}
