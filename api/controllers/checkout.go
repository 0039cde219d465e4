package controllers

import (
	"context"
	"net/http"

	"github.com/secondbowl/storefront-gateway/api/middleware"
	"github.com/secondbowl/storefront-gateway/api/responses"
	"github.com/secondbowl/storefront-gateway/api/validators"
	checkoutsvc "github.com/secondbowl/storefront-gateway/internal/checkout"
	"github.com/secondbowl/storefront-gateway/pkg/backend"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
)

// CheckoutSubmitter places an order from a session cart and a form.
type CheckoutSubmitter interface {
	Submit(ctx context.Context, sessionID string, form checkoutsvc.Form) (*backend.Order, error)
}

// Checkout places the order for the session's cart. The form is validated by
// the checkout service so the same rules apply on every entry point.
func Checkout(svc CheckoutSubmitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form checkoutsvc.Form
		if err := validators.DecodeJSON(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session := middleware.CartSessionFromContext(r.Context())
		order, err := svc.Submit(r.Context(), session, form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(*order))
	}
}
