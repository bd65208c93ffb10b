// internal/app/features/payments/cancel.go
package payments

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

// HandleCancel withdraws the caller's own pending attempt. Mounted on
// POST /cancel.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.CurrentUser(r)

	var req cancelRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.lookupUser(ctx, identity.UserID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	paymentID, err := primitive.ObjectIDFromHex(req.PaymentID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.New(apperr.Invalid, "Payment data is not found"))
		return
	}

	if err := h.Payments.Cancel(ctx, identity.UserID, paymentID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("payment cancelled",
		zap.String("user_id", identity.UserID.Hex()),
		zap.String("payment_id", req.PaymentID))

	httpjson.OK(w, "Payment is already cancelled", map[string]string{
		"payment_id": req.PaymentID,
	})
}
