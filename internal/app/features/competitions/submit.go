// internal/app/features/competitions/submit.go
package competitions

import (
	"context"
	"net/http"

	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/contesthub/internal/app/system/timeouts"
	"github.com/dalemusser/contesthub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleSubmit records the entry URL on the registration a code resolves to.
// Mounted on POST /submit.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.CurrentUser(r)

	var req submitRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Users.GetByID(ctx, identity.UserID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	reg, err := h.Registrations.SubmitEntry(ctx, req.Code, req.URL)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("submission recorded",
		zap.String("user_id", identity.UserID.Hex()),
		zap.String("code", req.Code))

	httpjson.OK(w, "Succesfully submit the item", map[string]string{
		"url":               reg.URL,
		"code":              req.Code,
		"submission_status": models.SubmissionSubmitted,
	})
}
