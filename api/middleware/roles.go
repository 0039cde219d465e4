package middleware

import (
	"context"
	"net/http"

	"github.com/secondbowl/storefront-gateway/api/responses"
	"github.com/secondbowl/storefront-gateway/pkg/backend"
	pkgerrors "github.com/secondbowl/storefront-gateway/pkg/errors"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
)

// RoleResolver resolves the caller's server-assigned role.
type RoleResolver interface {
	GetCallerRole(ctx context.Context) (backend.Role, error)
}

// RequireRole gates a route on the backend-assigned role. The resolver is
// cached, so the gate does not cost a backend round trip per request.
func RequireRole(role backend.Role, roles RoleResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, err := roles.GetCallerRole(r.Context())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if got != role {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
