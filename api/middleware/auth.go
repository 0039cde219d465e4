package middleware

import (
	"net/http"
	"strings"

	"github.com/secondbowl/storefront-gateway/api/responses"
	pkgAuth "github.com/secondbowl/storefront-gateway/pkg/auth"
	"github.com/secondbowl/storefront-gateway/pkg/config"
	pkgerrors "github.com/secondbowl/storefront-gateway/pkg/errors"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
)

// Identity verifies a bearer token when one is presented and seeds the
// request context with the resolved identity. Requests without credentials
// pass through as guests; a malformed or invalid token is rejected rather
// than downgraded.
func Identity(cfg config.IdentityConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseIdentityToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := pkgAuth.WithIdentity(r.Context(), pkgAuth.Identity{Principal: claims.Subject, Token: token})
			if logg != nil {
				ctx = logg.WithIdentity(ctx, claims.Subject)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects guests.
func RequireAuth(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := pkgAuth.FromContext(r.Context()); !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
