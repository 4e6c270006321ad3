package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/diewo77/agence-immo/httpx"
	"go.uber.org/zap"
)

type ctxKey string

const (
	bearerPrefix   = "Bearer "
	identityCtxKey = ctxKey("identity")
)

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	UserID  uint
	Email   string
	Role    string
	TokenID uint
}

// TokenResolver maps an opaque bearer token to the identity owning it.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (Identity, error)
}

// WithIdentity stores the identity in context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, id)
}

// IdentityFromContext extracts the identity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey).(Identity)
	return id, ok
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

// Middleware rejects requests without a valid bearer token and attaches the
// resolved identity to the request context.
func Middleware(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required", nil)
				return
			}
			id, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				zap.S().Warnw("token rejected", "remote", r.RemoteAddr, "path", r.URL.Path, "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "invalid or expired token", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
