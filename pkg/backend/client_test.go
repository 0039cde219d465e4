package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/secondbowl/storefront-gateway/pkg/auth"
	"github.com/secondbowl/storefront-gateway/pkg/config"
	pkgerrors "github.com/secondbowl/storefront-gateway/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.BackendConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func writeData(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"data": data}); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestCreateOrderSendsAuthAndDecodesEnvelope(t *testing.T) {
	var gotAuth string
	var gotBody OrderDraft

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/orders" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		writeData(t, w, Order{ID: 77, Status: StatusPending, TotalAmount: 2550})
	}))

	ctx := auth.WithIdentity(context.Background(), auth.Identity{Principal: "p1", Token: "tok-123"})
	items := []OrderItem{{Item: Item{ID: 4, Name: "Dan Dan Noodles", Price: 850}, Quantity: 3, Total: 2550}}
	order, err := client.CreateOrder(ctx, OrderDraft{
		Items:           items,
		BillingAddress:  Address{City: "Lahore"},
		ShippingAddress: Address{City: "Lahore"},
		Note:            "extra chili oil",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if order.ID != 77 {
		t.Fatalf("expected server-assigned id 77, got %d", order.ID)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer token to be forwarded, got %q", gotAuth)
	}
	if len(gotBody.Items) != 1 || gotBody.Items[0].Total != 2550 {
		t.Fatalf("unexpected request body %+v", gotBody)
	}
	if gotBody.Note != "extra chili oil" {
		t.Fatalf("expected note to be carried, got %q", gotBody.Note)
	}
}

func TestGetOrderAbsentReturnsNilNil(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	order, err := client.GetOrder(context.Background(), 404)
	if err != nil {
		t.Fatalf("absent order should not error, got %v", err)
	}
	if order != nil {
		t.Fatalf("expected nil order, got %+v", order)
	}
}

func TestErrorStatusMapsToCode(t *testing.T) {
	tests := []struct {
		status int
		code   pkgerrors.Code
	}{
		{http.StatusBadRequest, pkgerrors.CodeValidation},
		{http.StatusUnauthorized, pkgerrors.CodeUnauthorized},
		{http.StatusForbidden, pkgerrors.CodeForbidden},
		{http.StatusConflict, pkgerrors.CodeConflict},
		{http.StatusUnprocessableEntity, pkgerrors.CodeStateConflict},
		{http.StatusInternalServerError, pkgerrors.CodeDependency},
	}

	for _, tt := range tests {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		_, err := client.ListOrders(context.Background())
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != tt.code {
			t.Fatalf("status %d expected code %s, got %v", tt.status, tt.code, err)
		}
	}
}

func TestGetCallerRoleRejectsUnknownRole(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, roleResponse{Role: "superuser"})
	}))

	if _, err := client.GetCallerRole(context.Background()); err == nil {
		t.Fatal("expected unknown role to be rejected")
	}
}

func TestConnectivityCheckUnreachable(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, "ok")
	}))
	if err := client.ConnectivityCheck(context.Background()); err != nil {
		t.Fatalf("expected healthy check, got %v", err)
	}

	server.Close()
	err := client.ConnectivityCheck(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error after shutdown, got %v", err)
	}
}
