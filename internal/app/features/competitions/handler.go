// internal/app/features/competitions/handler.go

// Package competitions serves the catalog, the registration workflow (direct
// and join-by-code), team management, submissions and the admin registration
// report.
package competitions

import (
	billstore "github.com/dalemusser/contesthub/internal/app/store/bills"
	competitionstore "github.com/dalemusser/contesthub/internal/app/store/competitions"
	paymentstore "github.com/dalemusser/contesthub/internal/app/store/payments"
	registrationstore "github.com/dalemusser/contesthub/internal/app/store/registrations"
	userstore "github.com/dalemusser/contesthub/internal/app/store/users"
	"github.com/dalemusser/contesthub/internal/app/system/metrics"
	"go.uber.org/zap"
)

// Handler holds dependencies for the competition endpoints.
type Handler struct {
	Users         *userstore.Store
	Competitions  *competitionstore.Store
	Registrations *registrationstore.Store
	Bills         *billstore.Store
	Payments      *paymentstore.Store
	Metrics       *metrics.Metrics
	Log           *zap.Logger
}

// NewHandler constructs a competitions Handler.
func NewHandler(
	users *userstore.Store,
	competitions *competitionstore.Store,
	registrations *registrationstore.Store,
	bills *billstore.Store,
	payments *paymentstore.Store,
	m *metrics.Metrics,
	log *zap.Logger,
) *Handler {
	return &Handler{
		Users:         users,
		Competitions:  competitions,
		Registrations: registrations,
		Bills:         bills,
		Payments:      payments,
		Metrics:       m,
		Log:           log,
	}
}
