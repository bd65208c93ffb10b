// internal/app/features/uploads/routes.go
package uploads

import (
	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Routes mounts the upload endpoint. Mounted under /api/v1/upload.
func Routes(h *Handler, tokens *auth.Manager, log *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireUser(log))

		pr.Post("/", h.HandleUpload)
	})

	return r
}
