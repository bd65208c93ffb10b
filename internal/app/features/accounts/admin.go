// internal/app/features/accounts/admin.go
package accounts

import (
	"context"
	"net/http"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/contesthub/internal/app/system/timeouts"
	"github.com/dalemusser/contesthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// userWithDetail is one row in the admin user listing: the account joined
// with its detail document.
type userWithDetail struct {
	models.User
	Detail *models.UserDetail `json:"detail,omitempty"`
}

// HandleListUsers returns every non-admin account with its detail document.
// Mounted on GET /all (admin only).
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	rows := make([]userWithDetail, 0, len(users))
	for _, u := range users {
		row := userWithDetail{User: u}
		if detail, err := h.Users.Detail(ctx, u.ID); err == nil {
			row.Detail = detail
		}
		rows = append(rows, row)
	}

	httpjson.OK(w, "Successfully get the user data", rows)
}

// HandleVerifyUser marks an account as identity-verified after an admin has
// reviewed its detail. Mounted on POST /verify (admin only).
func (h *Handler) HandleVerifyUser(w http.ResponseWriter, r *http.Request) {
	var req verifyUserRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Newf(apperr.NotFound, "User with id %s is not found", req.ID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Users.SetVerified(ctx, user.ID, true); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("user verified", zap.String("user_id", user.ID.Hex()))

	httpjson.OK(w, "Verification success", nil)
}
