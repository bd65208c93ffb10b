// internal/app/features/competitions/register.go
package competitions

import (
	"context"
	"net/http"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/contesthub/internal/app/system/timeouts"
	"github.com/dalemusser/contesthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleRegister creates an owner registration and its bill for the caller.
// Mounted on POST /register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.CurrentUser(r)

	var req registerRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	user, err := h.Users.GetByID(ctx, identity.UserID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	comp, err := h.competitionByHex(ctx, req.CompetitionID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	college := ""
	if detail, err := h.Users.Detail(ctx, user.ID); err == nil {
		college = detail.College
	}

	reg, bill, err := h.Registrations.RegisterDirect(ctx, user, college, comp)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Metrics.IncrementRegistration("owner")
	h.Log.Info("competition registered",
		zap.String("user_id", user.ID.Hex()),
		zap.String("competition_id", comp.ID.Hex()),
		zap.String("code", reg.Code))

	httpjson.OK(w, "Successfully register the competition", registerResponse{
		Registration: *reg,
		BillID:       bill.ID,
		BillTotal:    bill.BillTotal,
		RealPrice:    bill.RealPrice,
		UniqueCode:   bill.UniqueCode,
	})
}

// HandleJoin adds the caller to a team under an owner's code. Mounted on
// POST /register-by-code.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.CurrentUser(r)

	var req joinRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	user, err := h.Users.GetByID(ctx, identity.UserID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	comp, err := h.competitionByHex(ctx, req.CompetitionID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	college := ""
	if detail, err := h.Users.Detail(ctx, user.ID); err == nil {
		college = detail.College
	}

	reg, err := h.Registrations.JoinByCode(ctx, user, college, comp, req.Code)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Metrics.IncrementRegistration("member")
	h.Log.Info("joined competition by code",
		zap.String("user_id", user.ID.Hex()),
		zap.String("code", req.Code))

	httpjson.OK(w, "Successfully register the competition", joinResponse{
		Code:             reg.ID.Hex(),
		IsOwner:          false,
		UserID:           reg.UserID,
		UserEmail:        reg.UserEmail,
		UserFullName:     reg.UserFullName,
		UserCollege:      reg.UserCollege,
		CompetitionID:    reg.CompetitionID,
		CompetitionName:  reg.CompetitionName,
		CompetitionType:  reg.CompetitionType,
		UsingSubmission:  reg.UsingSubmission,
		AcceptanceStatus: reg.AcceptanceStatus,
		IsActive:         reg.IsActive,
	})
}

// competitionByHex resolves a client-supplied competition id. A malformed id
// gets the same not-found answer as an unknown one.
func (h *Handler) competitionByHex(ctx context.Context, hex string) (*models.Competition, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, apperr.Newf(apperr.NotFound, "Competition with id %s is not exist", hex)
	}
	return h.Competitions.GetByID(ctx, id)
}
