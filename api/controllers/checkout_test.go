package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	checkoutsvc "github.com/secondbowl/storefront-gateway/internal/checkout"
	"github.com/secondbowl/storefront-gateway/pkg/backend"
	pkgerrors "github.com/secondbowl/storefront-gateway/pkg/errors"
)

type stubCheckout struct {
	gotSession string
	gotForm    checkoutsvc.Form
	order      *backend.Order
	err        error
}

func (s *stubCheckout) Submit(ctx context.Context, sessionID string, form checkoutsvc.Form) (*backend.Order, error) {
	s.gotSession = sessionID
	s.gotForm = form
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func TestCheckoutSuccessIs201(t *testing.T) {
	stub := &stubCheckout{order: &backend.Order{ID: 88, Status: backend.StatusPending, TotalAmount: 2550}}
	handler := withCartSession(Checkout(stub, nil))

	body := `{"name":"Ayesha Khan","phone":"0300-1234567","fulfillment":"pickup"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodPost, "/api/v1/checkout", body, "s1"))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if stub.gotSession != "s1" {
		t.Fatalf("expected session s1, got %q", stub.gotSession)
	}
	if stub.gotForm.Fulfillment != checkoutsvc.FulfillmentPickup {
		t.Fatalf("unexpected form %+v", stub.gotForm)
	}
}

func TestCheckoutMalformedBodyIs400(t *testing.T) {
	handler := withCartSession(Checkout(&stubCheckout{}, nil))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodPost, "/api/v1/checkout", `{"name":`, "s1"))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCheckoutServiceErrorsPassThrough(t *testing.T) {
	stub := &stubCheckout{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to place an order")}
	handler := withCartSession(Checkout(stub, nil))

	body := `{"name":"Ayesha Khan","phone":"0300-1234567","fulfillment":"pickup"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodPost, "/api/v1/checkout", body, "s1"))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
