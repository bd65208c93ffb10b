// internal/app/features/competitions/memberstatus.go
package competitions

import (
	"context"
	"net/http"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/contesthub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleMemberStatus records the owner's verdict on a team join request.
// Mounted on PATCH /member/status.
func (h *Handler) HandleMemberStatus(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.CurrentUser(r)

	var req memberStatusRequest
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

	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		httpjson.Error(w, h.Log,
			apperr.Newf(apperr.NotFound, "User with id %s is not found", req.MemberID))
		return
	}
	if _, err := h.Users.GetByID(ctx, memberID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Registrations.ChangeMemberStatus(ctx, req.Code, memberID, req.Status); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("member status changed",
		zap.String("code", req.Code),
		zap.String("member_id", req.MemberID),
		zap.String("status", req.Status))

	httpjson.OK(w, "Successfully change the user status", nil)
}
