package controllers

import (
	"context"
	"net/http"

	"github.com/secondbowl/storefront-gateway/api/responses"
	"github.com/secondbowl/storefront-gateway/api/validators"
	"github.com/secondbowl/storefront-gateway/internal/admin"
	"github.com/secondbowl/storefront-gateway/pkg/backend"
	pkgerrors "github.com/secondbowl/storefront-gateway/pkg/errors"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
)

// AdminOrderService is the store-wide order management surface.
type AdminOrderService interface {
	ListAll(ctx context.Context) ([]backend.Order, error)
	GetAny(ctx context.Context, orderID int64) (*backend.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status backend.OrderStatus) (*backend.Order, error)
}

// AdminOrdersList returns every order, filtered by the q and status query
// parameters and sorted newest first.
func AdminOrdersList(svc AdminOrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := validators.QueryString(r, "q")
		status := validators.QueryString(r, "status")
		responses.WriteSuccess(w, newOrderListResponse(admin.Filter(orders, query, status)))
	}
}

// AdminOrderDetail returns any order without an ownership check.
func AdminOrderDetail(svc AdminOrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseOrderID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetAny(r.Context(), id)
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

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// AdminOrderStatusUpdate moves an order to a new status.
func AdminOrderStatusUpdate(svc AdminOrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseOrderID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), id, backend.OrderStatus(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(*order))
	}
}

// OrderStatuses lists every order status in display order, for the admin
// status picker.
func OrderStatuses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, backend.Statuses())
	}
}
