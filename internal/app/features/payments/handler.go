// internal/app/features/payments/handler.go

// Package payments serves proof-of-transfer submission, cancellation, and
// the admin verification verdict.
package payments

import (
	paymentstore "github.com/dalemusser/contesthub/internal/app/store/payments"
	userstore "github.com/dalemusser/contesthub/internal/app/store/users"
	"github.com/dalemusser/contesthub/internal/app/system/metrics"
	"go.uber.org/zap"
)

// Handler holds dependencies for the payment endpoints.
type Handler struct {
	Users    *userstore.Store
	Payments *paymentstore.Store
	Metrics  *metrics.Metrics
	Log      *zap.Logger
}

// NewHandler constructs a payments Handler.
func NewHandler(users *userstore.Store, payments *paymentstore.Store, m *metrics.Metrics, log *zap.Logger) *Handler {
	return &Handler{Users: users, Payments: payments, Metrics: m, Log: log}
}
