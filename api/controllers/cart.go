package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/secondbowl/storefront-gateway/api/middleware"
	"github.com/secondbowl/storefront-gateway/api/responses"
	"github.com/secondbowl/storefront-gateway/api/validators"
	"github.com/secondbowl/storefront-gateway/internal/cart"
	"github.com/secondbowl/storefront-gateway/internal/catalog"
	"github.com/secondbowl/storefront-gateway/pkg/currency"
	pkgerrors "github.com/secondbowl/storefront-gateway/pkg/errors"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
)

type cartLineResponse struct {
	ID                 string `json:"id"`
	ItemID             int64  `json:"itemId"`
	Name               string `json:"name"`
	UnitPrice          int64  `json:"unitPrice"`
	UnitPriceFormatted string `json:"unitPriceFormatted"`
	Quantity           int    `json:"quantity"`
	LineTotal          int64  `json:"lineTotal"`
	LineTotalFormatted string `json:"lineTotalFormatted"`
}

type cartResponse struct {
	Items             []cartLineResponse `json:"items"`
	Subtotal          int64              `json:"subtotal"`
	SubtotalFormatted string             `json:"subtotalFormatted"`
	ItemCount         int                `json:"itemCount"`
}

func newCartResponse(snapshot cart.Snapshot) cartResponse {
	items := make([]cartLineResponse, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		total := line.UnitPrice * int64(line.Quantity)
		items = append(items, cartLineResponse{
			ID:                 line.ID,
			ItemID:             line.ItemID,
			Name:               line.Name,
			UnitPrice:          line.UnitPrice,
			UnitPriceFormatted: currency.FormatRupees(line.UnitPrice),
			Quantity:           line.Quantity,
			LineTotal:          total,
			LineTotalFormatted: currency.FormatRupees(total),
		})
	}
	return cartResponse{
		Items:             items,
		Subtotal:          snapshot.Subtotal,
		SubtotalFormatted: currency.FormatRupees(snapshot.Subtotal),
		ItemCount:         snapshot.ItemCount,
	}
}

// CartFetch returns the session's cart.
func CartFetch(carts *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.CartSessionFromContext(r.Context())
		responses.WriteSuccess(w, newCartResponse(carts.Get(session)))
	}
}

type addCartItemRequest struct {
	Slug    string `json:"slug" validate:"required"`
	Variant string `json:"variant"`
}

// CartAdd resolves a menu selection and adds it to the session's cart.
func CartAdd(carts *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line, ok := catalog.Resolve(payload.Slug, payload.Variant)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found"))
			return
		}

		session := middleware.CartSessionFromContext(r.Context())
		carts.AddItem(session, line)
		responses.WriteSuccess(w, newCartResponse(carts.Get(session)))
	}
}

// CartIncrement raises the quantity of one line.
func CartIncrement(carts *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.CartSessionFromContext(r.Context())
		carts.IncrementItem(session, chi.URLParam(r, "lineId"))
		responses.WriteSuccess(w, newCartResponse(carts.Get(session)))
	}
}

// CartDecrement lowers the quantity of one line, removing it at zero.
func CartDecrement(carts *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.CartSessionFromContext(r.Context())
		carts.DecrementItem(session, chi.URLParam(r, "lineId"))
		responses.WriteSuccess(w, newCartResponse(carts.Get(session)))
	}
}

// CartRemove drops one line regardless of quantity.
func CartRemove(carts *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.CartSessionFromContext(r.Context())
		carts.RemoveItem(session, chi.URLParam(r, "lineId"))
		responses.WriteSuccess(w, newCartResponse(carts.Get(session)))
	}
}

// CartClear empties the session's cart.
func CartClear(carts *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.CartSessionFromContext(r.Context())
		carts.Clear(session)
		responses.WriteSuccess(w, newCartResponse(carts.Get(session)))
	}
}
