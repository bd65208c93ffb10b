// internal/testutil/http.go
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// UserIdentity returns an auth.Identity for a regular user.
func UserIdentity(userID primitive.ObjectID) auth.Identity {
	return auth.Identity{UserID: userID, Email: "user@test.com", Role: "user"}
}

// AdminIdentity returns an auth.Identity with admin role.
func AdminIdentity() auth.Identity {
	return auth.Identity{UserID: primitive.NewObjectID(), Email: "admin@test.com", Role: "admin"}
}

// WithIdentity adds a caller identity to the request context, bypassing the
// bearer-token middleware.
func WithIdentity(r *http.Request, id auth.Identity) *http.Request {
	return auth.WithTestIdentity(r, id)
}

// NewJSONRequest creates an HTTP request with a JSON-encoded body.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DecodeBody decodes the recorded JSON response body into dst.
func DecodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}
