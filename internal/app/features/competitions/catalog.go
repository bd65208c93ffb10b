// internal/app/features/competitions/catalog.go
package competitions

import (
	"context"
	"net/http"

	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/contesthub/internal/app/system/timeouts"
)

// HandleCatalog returns the active competition catalog. Mounted on GET /,
// no authentication required.
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comps, err := h.Competitions.List(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.OK(w, "List of competition is already retrived", comps)
}
