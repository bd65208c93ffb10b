// internal/app/features/payments/verify.go
package payments

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

// HandleVerify records the admin verdict on the pending attempt for a bill.
// Mounted on POST /verify (admin only).
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	billID, err := primitive.ObjectIDFromHex(req.BillID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.New(apperr.Invalid, "Billing is not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	result, err := h.Payments.Verify(ctx, billID, req.Status)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	verdict := models.AttemptRejected
	if req.Status {
		verdict = models.AttemptAccepted
	}
	h.Metrics.IncrementPaymentVerified(verdict)
	h.Log.Info("payment verified",
		zap.String("bill_id", req.BillID),
		zap.String("payment_id", result.PaymentID.Hex()),
		zap.Bool("approved", req.Status))

	httpjson.OK(w, "Successfully change payment status", paymentReceipt{
		PaymentID: result.PaymentID.Hex(),
		BillID:    result.BillID.Hex(),
		Total:     result.BillTotal,
	})
}
