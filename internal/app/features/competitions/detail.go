// internal/app/features/competitions/detail.go
package competitions

import (
	"context"
	"net/http"

	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/contesthub/internal/app/system/timeouts"
	"github.com/dalemusser/contesthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// HandleDetail returns the registration a code resolves to, with the
// holder's identity fields stripped, the bill and attempt history attached,
// and the roster for team competitions. Mounted on GET /{code}.
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.CurrentUser(r)
	code := chi.URLParam(r, "code")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Users.GetByID(ctx, identity.UserID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	reg, err := h.Registrations.GetByCode(ctx, code)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	resp := detailResponse{
		Code:             reg.Code,
		CompetitionID:    reg.CompetitionID,
		CompetitionName:  reg.CompetitionName,
		CompetitionType:  reg.CompetitionType,
		UsingSubmission:  reg.UsingSubmission,
		PaymentStatus:    reg.PaymentStatus,
		SubmissionStatus: reg.SubmissionStatus,
		URL:              reg.URL,
		IsActive:         reg.IsActive,
		CreatedAt:        reg.CreatedAt,
		UpdatedAt:        reg.UpdatedAt,
		Payments:         []paymentSummary{},
	}

	bill, err := h.Bills.GetByRegistration(ctx, reg.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if bill != nil {
		resp.Bill = &billSummary{
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
			resp.Payments = append(resp.Payments, paymentSummary{
				ID:        p.ID,
				ImageURL:  p.ImageURL,
				Status:    p.Status,
				CreatedAt: p.CreatedAt,
				UpdatedAt: p.UpdatedAt,
			})
		}
	}

	if reg.CompetitionType == models.CompetitionTeam {
		roster, err := h.Registrations.Roster(ctx, reg.Code)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		for _, member := range roster {
			resp.Members = append(resp.Members, rosterMember{
				UserEmail:        member.UserEmail,
				UserFullName:     member.UserFullName,
				UserCollege:      member.UserCollege,
				IsActive:         member.IsActive,
				AcceptanceStatus: member.AcceptanceStatus,
				IsOwner:          member.IsOwner,
			})
		}
	}

	httpjson.OK(w, "Successfully get the competition detail", resp)
}
