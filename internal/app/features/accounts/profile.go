// internal/app/features/accounts/profile.go
package accounts

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/contesthub/internal/app/store/users"
	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/dalemusser/contesthub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/contesthub/internal/app/system/timeouts"
)

// HandleProfile returns the caller's profile joined with their student
// detail. Mounted on GET /profile.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, identity.UserID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	college := ""
	if detail, err := h.Users.Detail(ctx, identity.UserID); err == nil {
		college = detail.College
	}

	httpjson.OK(w, "Successful retrieval of user profile.", profileResponse{
		FullName:   user.FullName,
		Nickname:   user.Nickname,
		Email:      user.Email,
		Phone:      user.Phone,
		Status:     user.Status,
		College:    college,
		IsVerified: user.IsVerified,
	})
}

// HandleVerification records the identity detail a user files for admin
// review. Mounted on POST /verification.
func (h *Handler) HandleVerification(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.CurrentUser(r)

	var req verificationRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Users.SubmitVerification(ctx, identity.UserID, userstore.VerificationUpdate{
		Major:            htmlsanitize.Strip(req.Major),
		Batch:            htmlsanitize.Strip(req.Batch),
		BirthDate:        htmlsanitize.Strip(req.BirthDate),
		StudentNumber:    htmlsanitize.Strip(req.StudentNumber),
		StudentNumberURL: req.StudentNumberURL,
		PurchaseProofURL: req.PurchaseProofURL,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.OK(w, "Verification successful", nil)
}
