// Package auth verifies tokens minted by the external identity provider and
// carries the resolved identity through request contexts. The gateway never
// mints credentials itself; login and logout happen against the provider.
package auth

import "context"

// Identity is the authenticated principal for one request.
type Identity struct {
	// Principal is the provider-assigned identifier, used to scope
	// "my orders" and role checks on the remote backend.
	Principal string
	// Token is the raw bearer token, forwarded on backend calls.
	Token string
}

type ctxKey struct{}

// WithIdentity injects the identity into the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity for the request, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok || id.Principal == "" {
		return Identity{}, false
	}
	return id, true
}
