package policy

import (
	"context"
	"errors"
	"net/http"

	"github.com/diewo77/agence-immo/auth"
	"github.com/diewo77/agence-immo/gate"
	"github.com/diewo77/agence-immo/httpx"
	"go.uber.org/zap"
)

// AuthGate checks the role of the authenticated identity against the
// permission profiles of the gate package. It runs after auth.Middleware.
type AuthGate struct {
	Resolver gate.ProfileResolver
}

// NewAuthGate creates a gate over the built-in agent and admin roles.
func NewAuthGate() *AuthGate {
	return &AuthGate{Resolver: gate.NewRoleResolver()}
}

// Can reports whether the identity in ctx may perform action on resourceType.
func (g *AuthGate) Can(ctx context.Context, action gate.Action, resourceType string) bool {
	return g.authorize(ctx, action, resourceType) == nil
}

func (g *AuthGate) authorize(ctx context.Context, action gate.Action, resourceType string) error {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return gate.ErrUnauthorized
	}
	return gate.Authorize(ctx, g.Resolver, id.Role, action, resourceType)
}

// RequirePermission rejects requests whose role lacks resourceType:action.
func (g *AuthGate) RequirePermission(resourceType string, action gate.Action) func(http.Handler) http.Handler {
	return g.require("insufficient permissions", func(ctx context.Context) error {
		return g.authorize(ctx, action, resourceType)
	})
}

// RequireAdmin rejects requests whose role does not hold every permission.
func (g *AuthGate) RequireAdmin() func(http.Handler) http.Handler {
	return g.require("admin privileges required", func(ctx context.Context) error {
		id, ok := auth.IdentityFromContext(ctx)
		if !ok {
			return gate.ErrUnauthorized
		}
		profile, err := g.Resolver.Resolve(ctx, id.Role)
		if err != nil {
			return err
		}
		if profile == nil || !profile.HasPermission(gate.PermissionSuperAdmin) {
			return gate.ErrForbidden
		}
		return nil
	})
}

func (g *AuthGate) require(forbiddenMsg string, check func(ctx context.Context) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required", nil)
				return
			}
			err := check(r.Context())
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, gate.ErrForbidden), errors.Is(err, gate.ErrUnauthorized):
				// an unknown role resolves to no profile and is refused like a missing permission
				zap.S().Infow("access denied", "user_id", id.UserID, "role", id.Role, "path", r.URL.Path)
				httpx.JSONError(w, http.StatusForbidden, forbiddenMsg, nil)
			default:
				httpx.Error(w, r, err)
			}
		})
	}
}
