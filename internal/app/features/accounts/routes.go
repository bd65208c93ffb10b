// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the account endpoints. Mounted under /api/v1/user.
func Routes(h *Handler, tokens *auth.Manager) chi.Router {
	r := chi.NewRouter()

	// Public
	r.Post("/register", h.HandleSignup)
	r.Post("/login", h.HandleLogin)
	r.Post("/forgot-password", h.HandleForgotPassword)

	// Signed-in
	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireUser(h.Log))

		pr.Post("/verification", h.HandleVerification)
		pr.Get("/profile", h.HandleProfile)
		pr.Patch("/change-password", h.HandleChangePassword)
	})

	// Admin
	r.Group(func(ar chi.Router) {
		ar.Use(tokens.RequireAdmin(h.Log))

		ar.Get("/all", h.HandleListUsers)
		ar.Post("/verify", h.HandleVerifyUser)
	})

	return r
}
