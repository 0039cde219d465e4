package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/secondbowl/storefront-gateway/pkg/backend"
	pkgerrors "github.com/secondbowl/storefront-gateway/pkg/errors"
)

type stubOrderReader struct {
	orders []backend.Order
	err    error
}

func (s stubOrderReader) List(ctx context.Context) ([]backend.Order, error) {
	return s.orders, s.err
}

func (s stubOrderReader) Get(ctx context.Context, orderID int64) (*backend.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, o := range s.orders {
		if o.ID == orderID {
			return &o, nil
		}
	}
	return nil, nil
}

func TestOrdersListFormatsTotals(t *testing.T) {
	handler := OrdersList(stubOrderReader{orders: []backend.Order{{ID: 7, TotalAmount: 2550}}}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var envelope struct {
		Data []orderResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].TotalFormatted != "Rs 2550" {
		t.Fatalf("unexpected response %+v", envelope.Data)
	}
}

func TestOrdersListUnauthorizedPassesThrough(t *testing.T) {
	handler := OrdersList(stubOrderReader{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestOrderDetailRejectsNonNumericID(t *testing.T) {
	router := routeWithOrderID(OrderDetail(stubOrderReader{}, nil), http.MethodGet, "/orders/{orderId}")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/orders/abc", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestOrderDetailAbsentIs404(t *testing.T) {
	router := routeWithOrderID(OrderDetail(stubOrderReader{}, nil), http.MethodGet, "/orders/{orderId}")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/orders/42", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

type stubCanceller struct {
	order *backend.Order
	err   error
}

func (s stubCanceller) Cancel(ctx context.Context, orderID int64) (*backend.Order, error) {
	return s.order, s.err
}

func TestOrderCancelStateConflictIs422(t *testing.T) {
	stub := stubCanceller{err: pkgerrors.New(pkgerrors.CodeStateConflict, "only pending orders can be cancelled")}
	router := routeWithOrderID(OrderCancel(stub, nil), http.MethodPost, "/orders/{orderId}/cancel")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/orders/7/cancel", nil))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestOrderCancelSuccess(t *testing.T) {
	stub := stubCanceller{order: &backend.Order{ID: 7, Status: backend.StatusCancelled}}
	router := routeWithOrderID(OrderCancel(stub, nil), http.MethodPost, "/orders/{orderId}/cancel")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/orders/7/cancel", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var envelope struct {
		Data orderResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Status != backend.StatusCancelled {
		t.Fatalf("unexpected status %s", envelope.Data.Status)
	}
}
