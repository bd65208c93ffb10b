// internal/app/features/payments/pay.go
package payments

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/contesthub/internal/app/system/timeouts"
	"github.com/dalemusser/contesthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var errUserNotFound = apperr.New(apperr.Invalid, "User is not found")

// HandlePay files a proof-of-transfer against a bill and moves it to
// Pending for admin review. Mounted on POST /pay.
func (h *Handler) HandlePay(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.CurrentUser(r)

	var req payRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	user, err := h.lookupUser(ctx, identity.UserID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	billID, err := primitive.ObjectIDFromHex(req.BillID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.New(apperr.Invalid, "Billing is not found"))
		return
	}

	payment, bill, err := h.Payments.Submit(ctx, user, billID, req.ImageURL)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Metrics.IncrementPaymentSubmitted()
	h.Log.Info("payment submitted",
		zap.String("user_id", user.ID.Hex()),
		zap.String("bill_id", bill.ID.Hex()),
		zap.String("payment_id", payment.ID.Hex()))

	httpjson.OK(w, "Successfully send the payment. Please wait admin verification", paymentReceipt{
		PaymentID: payment.ID.Hex(),
		BillID:    bill.ID.Hex(),
		Total:     bill.BillTotal,
	})
}

// lookupUser resolves the caller, folding a missing account into the
// payment-flow answer.
func (h *Handler) lookupUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Kind == apperr.NotFound {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return user, nil
}
