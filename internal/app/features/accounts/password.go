// internal/app/features/accounts/password.go
package accounts

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"net/http"

	userstore "github.com/dalemusser/contesthub/internal/app/store/users"
	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/contesthub/internal/app/system/mailer"
	"github.com/dalemusser/contesthub/internal/app/system/normalize"
	"github.com/dalemusser/contesthub/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// HandleChangePassword rotates the caller's password after checking the old
// one. Mounted on PATCH /change-password.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.CurrentUser(r)

	var req changePasswordRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if req.NewPassword == "" {
		httpjson.Error(w, h.Log, apperr.New(apperr.Invalid, "newPassword is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByID(ctx, identity.UserID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		httpjson.Error(w, h.Log, apperr.New(apperr.Invalid, "Wrong password"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("password changed", zap.String("user_id", user.ID.Hex()))

	httpjson.OK(w, "Password is change successfully", nil)
}

const resetPasswordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newResetPassword draws an 8-character replacement password from
// crypto/rand.
func newResetPassword() (string, error) {
	buf := make([]byte, 8)
	max := big.NewInt(int64(len(resetPasswordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = resetPasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// HandleForgotPassword generates a replacement password and emails it to the
// account holder. The stored hash only changes after the mail goes out, so a
// delivery failure leaves the old password working. Mounted on
// POST /forgot-password.
func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	req.Email = normalize.Email(req.Email)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			err = apperr.Newf(apperr.NotFound, "User with email %s is not found", req.Email)
		}
		httpjson.Error(w, h.Log, err)
		return
	}

	password, err := newResetPassword()
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	email := mailer.BuildPasswordResetEmail(mailer.PasswordResetEmailData{
		SiteName:     h.SiteName,
		Nickname:     user.Nickname,
		NewPassword:  password,
		SupportEmail: h.SupportEmail,
	})
	email.To = user.Email

	if err := h.Mailer.Send(email); err != nil {
		h.Log.Error("password reset email failed",
			zap.String("user_id", user.ID.Hex()), zap.Error(err))
		httpjson.Error(w, h.Log, apperr.New(apperr.Internal, "Email failed to send"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := h.Users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("password reset issued", zap.String("user_id", user.ID.Hex()))

	httpjson.OK(w, "Password request success, check your email", nil)
}
