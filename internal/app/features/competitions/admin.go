// internal/app/features/competitions/admin.go
package competitions

import (
	"context"
	"net/http"

	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/contesthub/internal/app/system/timeouts"
	"github.com/dalemusser/contesthub/internal/domain/models"
)

// HandleListRegistrations returns every owner registration with its bill,
// the live payment attempt and the join-request history for teams.
// Registrations held by blocked users are dropped. Mounted on
// GET /registration (admin only).
func (h *Handler) HandleListRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	owners, err := h.Registrations.ListOwners(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	blocked, err := h.Users.BlockedEmails(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	rows := make([]registrationRow, 0, len(owners))
	for _, reg := range owners {
		if blocked[reg.UserEmail] {
			continue
		}

		row := registrationRow{
			ID:               reg.Code,
			CompetitionName:  reg.CompetitionName,
			CompetitionType:  reg.CompetitionType,
			UsingSubmission:  reg.UsingSubmission,
			UserFullName:     reg.UserFullName,
			UserEmail:        reg.UserEmail,
			UserCollege:      reg.UserCollege,
			PaymentStatus:    reg.PaymentStatus,
			SubmissionStatus: reg.SubmissionStatus,
			URL:              reg.URL,
			IsActive:         reg.IsActive,
			CreatedAt:        reg.CreatedAt,
		}

		bill, err := h.Bills.GetByRegistration(ctx, reg.ID)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		row.Bill = bill

		if bill != nil {
			payment, err := h.Payments.FirstNonRejected(ctx, bill.ID)
			if err != nil {
				httpjson.Error(w, h.Log, err)
				return
			}
			row.Payment = payment
		}

		if reg.CompetitionType == models.CompetitionTeam {
			members, err := h.Registrations.Members(ctx, reg.Code)
			if err != nil {
				httpjson.Error(w, h.Log, err)
				return
			}
			row.Member = make([]memberRow, 0, len(members))
			for _, m := range members {
				row.Member = append(row.Member, memberRow{
					AcceptanceStatus: m.AcceptanceStatus,
					UserFullName:     m.UserFullName,
					UserEmail:        m.UserEmail,
					IsActive:         m.IsActive,
					CreatedAt:        m.CreatedAt,
				})
			}
		}

		rows = append(rows, row)
	}

	httpjson.OK(w, "Successfully retrived registration data", rows)
}
