package controllers

import (
	"context"
	"net/http"

	"github.com/secondbowl/storefront-gateway/api/responses"
	"github.com/secondbowl/storefront-gateway/api/validators"
	"github.com/secondbowl/storefront-gateway/pkg/backend"
	"github.com/secondbowl/storefront-gateway/pkg/currency"
	pkgerrors "github.com/secondbowl/storefront-gateway/pkg/errors"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
)

// OrderReader is the caller-scoped order query surface.
type OrderReader interface {
	List(ctx context.Context) ([]backend.Order, error)
	Get(ctx context.Context, orderID int64) (*backend.Order, error)
}

// OrderCanceller cancels one of the caller's orders.
type OrderCanceller interface {
	Cancel(ctx context.Context, orderID int64) (*backend.Order, error)
}

type orderResponse struct {
	backend.Order
	TotalFormatted string `json:"totalFormatted"`
}

func newOrderResponse(order backend.Order) orderResponse {
	return orderResponse{Order: order, TotalFormatted: currency.FormatRupees(order.TotalAmount)}
}

func newOrderListResponse(orders []backend.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, newOrderResponse(order))
	}
	return out
}

// OrdersList returns the caller's orders.
func OrdersList(svc OrderReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderListResponse(orders))
	}
}

// OrderDetail returns one of the caller's orders.
func OrderDetail(svc OrderReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseOrderID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if order == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}
		responses.WriteSuccess(w, newOrderResponse(*order))
	}
}

// OrderCancel cancels one of the caller's orders.
func OrderCancel(svc OrderCanceller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseOrderID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Cancel(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(*order))
	}
}
