package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/secondbowl/storefront-gateway/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with an X-Request-Id, minting a uuid when the
// caller did not send one. The id is echoed on the response and attached to
// the request logger so log lines correlate across the middleware chain.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
