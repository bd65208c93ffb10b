// internal/app/features/payments/routes.go
package payments

import (
	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the payment endpoints. Mounted under /api/v1/payment.
func Routes(h *Handler, tokens *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireUser(h.Log))

		pr.Post("/pay", h.HandlePay)
		pr.Post("/cancel", h.HandleCancel)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(tokens.RequireAdmin(h.Log))

		ar.Post("/verify", h.HandleVerify)
	})

	return r
}
