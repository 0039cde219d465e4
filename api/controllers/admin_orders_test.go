package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/secondbowl/storefront-gateway/pkg/backend"
	pkgerrors "github.com/secondbowl/storefront-gateway/pkg/errors"
)

type stubAdminOrders struct {
	orders    []backend.Order
	updated   *backend.Order
	updateErr error
}

func (s stubAdminOrders) ListAll(ctx context.Context) ([]backend.Order, error) {
	return s.orders, nil
}

func (s stubAdminOrders) GetAny(ctx context.Context, orderID int64) (*backend.Order, error) {
	for _, o := range s.orders {
		if o.ID == orderID {
			return &o, nil
		}
	}
	return nil, nil
}

func (s stubAdminOrders) UpdateStatus(ctx context.Context, orderID int64, status backend.OrderStatus) (*backend.Order, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.updated, nil
}

func routeWithOrderID(handler http.HandlerFunc, method, pattern string) *chi.Mux {
	r := chi.NewRouter()
	r.Method(method, pattern, handler)
	return r
}

func adminOrders() []backend.Order {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []backend.Order{
		{ID: 1, Status: backend.StatusPending, Customer: "Ayesha Khan", CreatedAt: base, TotalAmount: 2550},
		{ID: 2, Status: backend.StatusDelivered, Customer: "Bilal Ahmed", CreatedAt: base.Add(time.Hour), TotalAmount: 895},
	}
}

func TestAdminOrdersListAppliesFilters(t *testing.T) {
	handler := AdminOrdersList(stubAdminOrders{orders: adminOrders()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders?status=delivered", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var envelope struct {
		Data []orderResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ID != 2 {
		t.Fatalf("unexpected result %+v", envelope.Data)
	}
	if envelope.Data[0].TotalFormatted != "Rs 895" {
		t.Fatalf("unexpected formatted total %q", envelope.Data[0].TotalFormatted)
	}
}

func TestAdminOrdersListNoMatchIsEmptyList(t *testing.T) {
	handler := AdminOrdersList(stubAdminOrders{orders: adminOrders()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders?q=nobody", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("no matches must still be 200, got %d", resp.Code)
	}
	var envelope struct {
		Data []orderResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 0 {
		t.Fatalf("expected empty list, got %+v", envelope.Data)
	}
}

func TestAdminOrderDetailUnknownIDIs404(t *testing.T) {
	router := routeWithOrderID(AdminOrderDetail(stubAdminOrders{orders: adminOrders()}, nil), http.MethodGet, "/orders/{orderId}")

	req := httptest.NewRequest(http.MethodGet, "/orders/999", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestAdminOrderStatusUpdateRejectsUnknownStatus(t *testing.T) {
	router := routeWithOrderID(AdminOrderStatusUpdate(stubAdminOrders{}, nil), http.MethodPost, "/orders/{orderId}/status")

	req := httptest.NewRequest(http.MethodPost, "/orders/1/status", strings.NewReader(`{"status":"teleported"}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAdminOrderStatusUpdateSameStatusIs422(t *testing.T) {
	stub := stubAdminOrders{updateErr: pkgerrors.New(pkgerrors.CodeStateConflict, "order already has that status")}
	router := routeWithOrderID(AdminOrderStatusUpdate(stub, nil), http.MethodPost, "/orders/{orderId}/status")

	req := httptest.NewRequest(http.MethodPost, "/orders/1/status", strings.NewReader(`{"status":"shipped"}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestAdminOrderStatusUpdateSuccess(t *testing.T) {
	updated := &backend.Order{ID: 1, Status: backend.StatusShipped, TotalAmount: 2550}
	router := routeWithOrderID(AdminOrderStatusUpdate(stubAdminOrders{updated: updated}, nil), http.MethodPost, "/orders/{orderId}/status")

	req := httptest.NewRequest(http.MethodPost, "/orders/1/status", strings.NewReader(`{"status":"shipped"}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data orderResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Status != backend.StatusShipped {
		t.Fatalf("unexpected status %s", envelope.Data.Status)
	}
}
