// internal/app/system/auth/middleware.go
package auth

import (
	"net/http"
	"strings"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// RequireUser verifies the Authorization bearer token and loads the caller
// Identity into the request context. Requests without a valid token get a
// 401 envelope and never reach the handler.
func (m *Manager) RequireUser(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := m.identityFromRequest(r)
			if err != nil {
				httpjson.Error(w, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin is RequireUser plus an admin-role check.
func (m *Manager) RequireAdmin(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := m.identityFromRequest(r)
			if err != nil {
				httpjson.Error(w, log, err)
				return
			}
			if id.Role != "admin" {
				httpjson.Error(w, log, apperr.New(apperr.Forbidden, "Admin access is required"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func (m *Manager) identityFromRequest(r *http.Request) (Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Identity{}, apperr.New(apperr.Unauthorized, "Authorization header is required")
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return Identity{}, apperr.New(apperr.Unauthorized, "Invalid authorization header format")
	}
	return m.Verify(token)
}
