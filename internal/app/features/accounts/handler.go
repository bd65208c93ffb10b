// internal/app/features/accounts/handler.go

// Package accounts serves signup, login, profile and the admin user screens.
package accounts

import (
	userstore "github.com/dalemusser/contesthub/internal/app/store/users"
	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/dalemusser/contesthub/internal/app/system/mailer"
	"go.uber.org/zap"
)

// Sender delivers outbound email. Satisfied by *mailer.Mailer; tests swap in
// a recorder.
type Sender interface {
	Send(msg mailer.Email) error
}

// Handler holds dependencies for the account endpoints.
type Handler struct {
	Users        *userstore.Store
	Tokens       *auth.Manager
	Mailer       Sender
	Log          *zap.Logger
	SiteName     string
	SupportEmail string
}

// NewHandler constructs an accounts Handler.
func NewHandler(users *userstore.Store, tokens *auth.Manager, mail Sender, log *zap.Logger, siteName, supportEmail string) *Handler {
	return &Handler{
		Users:        users,
		Tokens:       tokens,
		Mailer:       mail,
		Log:          log,
		SiteName:     siteName,
		SupportEmail: supportEmail,
	}
}
