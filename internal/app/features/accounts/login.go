// internal/app/features/accounts/login.go
package accounts

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/contesthub/internal/app/store/users"
	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/contesthub/internal/app/system/normalize"
	"github.com/dalemusser/contesthub/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// HandleLogin checks credentials and returns a bearer token plus the account
// document. Mounted on POST /login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	req.Email = normalize.Email(req.Email)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			err = apperr.Newf(apperr.NotFound, "User with email %s is not found", req.Email)
		}
		httpjson.Error(w, h.Log, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		httpjson.Error(w, h.Log, apperr.New(apperr.Invalid, "Wrong password"))
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", user.ID.Hex()))

	httpjson.Write(w, http.StatusOK, httpjson.Envelope{
		Message: "Login success",
		Data:    user,
		Token:   token,
	})
}
