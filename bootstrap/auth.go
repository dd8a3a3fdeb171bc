package bootstrap

import (
	"context"
	"net/http"
	"strings"

	"github.com/artpar/actionkit/app"
	"github.com/artpar/actionkit/ports"
)

// TokenAuthenticator authenticates requests by comparing a bearer token
// against a stored bcrypt hash. It accepts the token from the
// Authorization header or, for browser forms, the "auth_token" cookie.
type TokenAuthenticator struct {
	hash   []byte
	hasher ports.Hasher
}

// NewTokenAuthenticator creates an authenticator for the given hash.
func NewTokenAuthenticator(hash string, h ports.Hasher) *TokenAuthenticator {
	return &TokenAuthenticator{hash: []byte(hash), hasher: h}
}

// Authenticate resolves the actor behind the request.
func (a *TokenAuthenticator) Authenticate(r *http.Request) (any, error) {
	token := bearerToken(r)
	if token == "" {
		if c, err := r.Cookie("auth_token"); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		return nil, app.ErrUnauthenticated
	}
	if !a.hasher.Compare(a.hash, token) {
		return nil, app.ErrUnauthenticated
	}
	return "admin", nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

var _ ports.Authenticator = (*TokenAuthenticator)(nil)

// PermitAll authorizes every authenticated actor for every action. The
// demo has a single admin principal; multi-role policies plug in here.
type PermitAll struct{}

// Authorize always succeeds.
func (PermitAll) Authorize(ctx context.Context, actor any, action string) error {
	return nil
}

var _ ports.Authorizer = PermitAll{}
