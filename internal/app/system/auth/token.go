// internal/app/system/auth/token.go

// Package auth issues and verifies the bearer tokens that identify API
// callers, and provides the middleware that loads the caller's identity
// into the request context. Handlers never see raw tokens; they read the
// Identity placed in context.
package auth

import (
	"time"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is the authenticated caller as seen by handlers.
type Identity struct {
	UserID primitive.ObjectID
	Email  string
	Role   string // user | admin
}

// Claims is the JWT payload. Subject carries the user id hex.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewManager builds a Manager. expiry bounds token lifetime; zero means
// 24 hours.
func NewManager(secret string, expiry time.Duration) *Manager {
	if expiry == 0 {
		expiry = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), expiry: expiry, issuer: "contesthub"}
}

// Issue signs a token for the given user.
func (m *Manager) Issue(userID primitive.ObjectID, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

var errBadToken = apperr.New(apperr.Unauthorized, "Invalid or expired token")

// Verify parses and validates a token string, returning the caller identity.
func (m *Manager) Verify(tokenString string) (Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errBadToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errBadToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return Identity{}, errBadToken
	}

	role := claims.Role
	if role == "" {
		role = "user"
	}
	return Identity{UserID: userID, Email: claims.Email, Role: role}, nil
}
