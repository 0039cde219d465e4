package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/secondbowl/storefront-gateway/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

type contextKey string

const ctxCartSession contextKey = "cart_session"

// CartSession assigns every request a cart session. The client echoes the
// header back on subsequent requests; a missing or blank header starts a
// fresh cart.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := strings.TrimSpace(r.Header.Get(cartSessionHeader))
			if session == "" {
				session = uuid.NewString()
			}

			w.Header().Set(cartSessionHeader, session)

			ctx := context.WithValue(r.Context(), ctxCartSession, session)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, session)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartSessionFromContext returns the request's cart session id.
func CartSessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCartSession).(string); ok {
		return v
	}
	return ""
}
