// internal/app/features/accounts/signup.go
package accounts

import (
	"context"
	"net/http"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/contesthub/internal/app/system/normalize"
	"github.com/dalemusser/contesthub/internal/app/system/timeouts"
	"github.com/dalemusser/contesthub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// HandleSignup creates an account and its detail document and returns a
// bearer token so the client is signed in immediately. Mounted on
// POST /register.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	req.Email = normalize.Email(req.Email)
	req.Phone = normalize.Phone(req.Phone)
	req.FullName = htmlsanitize.Strip(req.FullName)
	req.Nickname = htmlsanitize.Strip(req.Nickname)
	req.College = htmlsanitize.Strip(req.College)

	if req.Email == "" || req.Password == "" || req.FullName == "" || req.Phone == "" {
		httpjson.Error(w, h.Log, apperr.New(apperr.Invalid,
			"fullname, email, phone and password are required"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user := &models.User{
		FullName:   req.FullName,
		Nickname:   req.Nickname,
		Email:      req.Email,
		Password:   string(hash),
		Phone:      req.Phone,
		Status:     req.Status,
		Role:       models.RoleUser,
		IsVerified: false,
	}
	detail := &models.UserDetail{College: req.College}

	if err := h.Users.Create(ctx, user, detail); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("user registered",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email))

	httpjson.Write(w, http.StatusCreated, httpjson.Envelope{
		Message: "Registration success",
		Data:    map[string]string{"id": user.ID.Hex()},
		Token:   token,
	})
}
