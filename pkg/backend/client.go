// Package backend is the typed client for the remote order/profile/role
// service. Every persisted entity is owned by that service; the gateway only
// calls through this surface.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/secondbowl/storefront-gateway/pkg/auth"
	"github.com/secondbowl/storefront-gateway/pkg/config"
	pkgerrors "github.com/secondbowl/storefront-gateway/pkg/errors"
	"github.com/secondbowl/storefront-gateway/pkg/metrics"
	"github.com/secondbowl/storefront-gateway/pkg/types"
)

// API is the call surface consumed by the gateway's services.
type API interface {
	CreateOrder(ctx context.Context, draft OrderDraft) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	GetOrder(ctx context.Context, id int64) (*Order, error)
	CancelOrder(ctx context.Context, id int64) (*Order, error)

	GetAllOrders(ctx context.Context) ([]Order, error)
	GetOrderByID(ctx context.Context, id int64) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status OrderStatus) (*Order, error)

	GetCallerUserProfile(ctx context.Context) (*UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, profile UserProfile) error
	GetCallerRole(ctx context.Context) (Role, error)

	ConnectivityCheck(ctx context.Context) error
}

// Client implements API over HTTP/JSON with enveloped responses.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.GatewayMetrics
}

// NewClient builds a backend client from configuration.
func NewClient(cfg config.BackendConfig, m *metrics.GatewayMetrics) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		metrics: m,
	}, nil
}

type updateStatusRequest struct {
	Status OrderStatus `json:"status"`
}

type roleResponse struct {
	Role Role `json:"role"`
}

// CreateOrder submits a new order; the backend assigns the id and recomputes
// totals.
func (c *Client) CreateOrder(ctx context.Context, draft OrderDraft) (*Order, error) {
	var order Order
	if err := c.call(ctx, "createOrder", http.MethodPost, "/v1/orders", draft, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the caller's own orders.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.call(ctx, "listOrders", http.MethodGet, "/v1/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns one of the caller's orders, or nil when absent.
func (c *Client) GetOrder(ctx context.Context, id int64) (*Order, error) {
	var order Order
	err := c.call(ctx, "getOrder", http.MethodGet, fmt.Sprintf("/v1/orders/%d", id), nil, &order)
	if err != nil {
		return nil, absentToNil(err)
	}
	return &order, nil
}

// CancelOrder cancels one of the caller's orders, or returns nil when absent.
func (c *Client) CancelOrder(ctx context.Context, id int64) (*Order, error) {
	var order Order
	err := c.call(ctx, "cancelOrder", http.MethodPost, fmt.Sprintf("/v1/orders/%d/cancel", id), nil, &order)
	if err != nil {
		return nil, absentToNil(err)
	}
	return &order, nil
}

// GetAllOrders returns every order. Admin-only; the backend enforces this
// independently of the gateway's role gate.
func (c *Client) GetAllOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.call(ctx, "getAllOrders", http.MethodGet, "/v1/admin/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrderByID returns any order without an ownership check, or nil when absent.
func (c *Client) GetOrderByID(ctx context.Context, id int64) (*Order, error) {
	var order Order
	err := c.call(ctx, "getOrderById", http.MethodGet, fmt.Sprintf("/v1/admin/orders/%d", id), nil, &order)
	if err != nil {
		return nil, absentToNil(err)
	}
	return &order, nil
}

// UpdateOrderStatus sets the order's status, or returns nil when absent.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status OrderStatus) (*Order, error) {
	var order Order
	req := updateStatusRequest{Status: status}
	err := c.call(ctx, "updateOrderStatus", http.MethodPost, fmt.Sprintf("/v1/admin/orders/%d/status", id), req, &order)
	if err != nil {
		return nil, absentToNil(err)
	}
	return &order, nil
}

// GetCallerUserProfile returns the caller's profile, or nil before the
// profile-setup flow has run. The call also triggers backend-side
// auto-registration of first-time identities.
func (c *Client) GetCallerUserProfile(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	err := c.call(ctx, "getCallerUserProfile", http.MethodGet, "/v1/profile", nil, &profile)
	if err != nil {
		return nil, absentToNil(err)
	}
	return &profile, nil
}

// SaveCallerUserProfile creates or updates the caller's profile.
func (c *Client) SaveCallerUserProfile(ctx context.Context, profile UserProfile) error {
	return c.call(ctx, "saveCallerUserProfile", http.MethodPut, "/v1/profile", profile, nil)
}

// GetCallerRole resolves the caller's server-assigned role.
func (c *Client) GetCallerRole(ctx context.Context) (Role, error) {
	var resp roleResponse
	if err := c.call(ctx, "getCallerRole", http.MethodGet, "/v1/role", nil, &resp); err != nil {
		return "", err
	}
	if !resp.Role.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("backend returned unknown role %q", resp.Role))
	}
	return resp.Role, nil
}

// ConnectivityCheck probes the backend health endpoint.
func (c *Client) ConnectivityCheck(ctx context.Context) error {
	return c.call(ctx, "connectivityCheck", http.MethodGet, "/v1/health", nil, nil)
}

func (c *Client) call(ctx context.Context, method, httpMethod, path string, body, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, httpMethod, path, body, out)
	c.metrics.ObserveBackendCall(method, time.Since(start))
	return err
}

func (c *Client) roundTrip(ctx context.Context, httpMethod, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id, ok := auth.FromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+id.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "backend unreachable")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response data")
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var envelope types.ErrorEnvelope
	message := ""
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		message = envelope.Error.Message
	}
	if message == "" {
		message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}
	return pkgerrors.New(codeForStatus(resp.StatusCode), message)
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusBadRequest:
		return pkgerrors.CodeValidation
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusUnprocessableEntity:
		return pkgerrors.CodeStateConflict
	default:
		return pkgerrors.CodeDependency
	}
}

// absentToNil folds not-found into the (nil, nil) absent convention used by
// the get/cancel calls.
func absentToNil(err error) error {
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
		return nil
	}
	return err
}
