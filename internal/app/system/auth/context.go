// internal/app/system/auth/context.go
package auth

import (
	"context"
	"net/http"
)

type contextKey struct{}

var identityKey contextKey

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// CurrentUser returns the identity loaded by the middleware, if any.
func CurrentUser(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey).(Identity)
	return id, ok
}

// WithTestIdentity injects an identity directly into a request for handler
// tests, bypassing the bearer-token middleware.
func WithTestIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(WithIdentity(r.Context(), id))
}
