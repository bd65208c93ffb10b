// internal/app/features/competitions/mine.go
package competitions

import (
	"context"
	"net/http"

	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/contesthub/internal/app/system/timeouts"
	"github.com/dalemusser/contesthub/internal/domain/models"
)

// HandleMine lists the caller's registrations with their bill and payment
// history. Members have no bill of their own, so their rows carry neither
// bill nor payments. Mounted on GET /me.
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Users.GetByID(ctx, identity.UserID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	regs, err := h.Registrations.ListByUser(ctx, identity.UserID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	rows := make([]myCompetition, 0, len(regs))
	for _, reg := range regs {
		row := myCompetition{
			Code:             reg.Code,
			Type:             reg.CompetitionType,
			Name:             reg.CompetitionName,
			IsActive:         reg.IsActive,
			UsingSubmission:  reg.UsingSubmission,
			SubmissionStatus: reg.SubmissionStatus,
			PaymentStatus:    reg.PaymentStatus,
			CreatedAt:        reg.CreatedAt,
			UpdatedAt:        reg.UpdatedAt,
			Payments:         []paymentSummary{},
		}
		if reg.UsingSubmission && reg.SubmissionStatus == models.SubmissionSubmitted {
			row.URL = reg.URL
		}

		bill, err := h.Bills.GetByRegistration(ctx, reg.ID)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		if bill != nil {
			row.Bill = &billSummary{
				ID:         bill.ID,
				RealPrice:  bill.RealPrice,
				BillTotal:  bill.BillTotal,
				UniqueCode: bill.UniqueCode,
				Status:     bill.Status,
			}
			payments, err := h.Payments.ListByBill(ctx, bill.ID)
			if err != nil {
				httpjson.Error(w, h.Log, err)
				return
			}
			for _, p := range payments {
				row.Payments = append(row.Payments, paymentSummary{
					ID:        p.ID,
					ImageURL:  p.ImageURL,
					Status:    p.Status,
					CreatedAt: p.CreatedAt,
					UpdatedAt: p.UpdatedAt,
				})
			}
		}
		rows = append(rows, row)
	}

	httpjson.OK(w, "List of your competition already returned", rows)
}
