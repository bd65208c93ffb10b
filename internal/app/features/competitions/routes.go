// internal/app/features/competitions/routes.go
package competitions

import (
	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the competition endpoints. Mounted under /api/v1/competition.
func Routes(h *Handler, tokens *auth.Manager) chi.Router {
	r := chi.NewRouter()

	// The catalog is public.
	r.Get("/", h.HandleCatalog)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireUser(h.Log))

		pr.Get("/me", h.HandleMine)
		pr.Post("/register", h.HandleRegister)
		pr.Post("/register-by-code", h.HandleJoin)
		pr.Post("/submit", h.HandleSubmit)
		pr.Patch("/member/status", h.HandleMemberStatus)
		pr.Get("/{code}", h.HandleDetail)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(tokens.RequireAdmin(h.Log))

		ar.Get("/registration", h.HandleListRegistrations)
	})

	return r
}
