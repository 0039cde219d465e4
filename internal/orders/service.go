// Package orders fronts the remote order endpoints with a short-lived query
// cache. Mutations publish invalidation signals instead of touching the cache
// directly; the service subscribes to its own signals, so invalidation also
// fires for mutations published elsewhere.
package orders

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/secondbowl/storefront-gateway/internal/events"
	"github.com/secondbowl/storefront-gateway/pkg/auth"
	"github.com/secondbowl/storefront-gateway/pkg/backend"
	"github.com/secondbowl/storefront-gateway/pkg/config"
	pkgerrors "github.com/secondbowl/storefront-gateway/pkg/errors"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
	"github.com/secondbowl/storefront-gateway/pkg/metrics"
	"github.com/secondbowl/storefront-gateway/pkg/redis"
)

// Cache is the slice of the redis client the service needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error

	OrderListKey(principal string) string
	OrderDetailKey(principal string, orderID int64) string
	AdminOrderListKey() string
	AdminOrderDetailKey(orderID int64) string
}

// Service is the cached order query/mutation layer.
type Service struct {
	api   backend.API
	cache Cache
	bus   *events.Bus
	cfg   config.CacheConfig
	logg  *logger.Logger
	m     *metrics.GatewayMetrics
}

// NewService wires the service and registers its cache-invalidation
// subscriptions on the bus.
func NewService(api backend.API, cache Cache, bus *events.Bus, cfg config.CacheConfig, logg *logger.Logger, m *metrics.GatewayMetrics) *Service {
	s := &Service{api: api, cache: cache, bus: bus, cfg: cfg, logg: logg, m: m}

	bus.Subscribe(events.OrderCreated, func(p events.Payload) {
		s.invalidate(cache.OrderListKey(p.Principal), cache.AdminOrderListKey())
	})
	bus.Subscribe(events.OrderCancelled, func(p events.Payload) {
		s.invalidate(
			cache.OrderListKey(p.Principal),
			cache.OrderDetailKey(p.Principal, p.OrderID),
			cache.AdminOrderListKey(),
			cache.AdminOrderDetailKey(p.OrderID),
		)
	})
	bus.Subscribe(events.OrderStatusUpdated, func(p events.Payload) {
		s.invalidate(cache.AdminOrderListKey(), cache.AdminOrderDetailKey(p.OrderID))
	})

	return s
}

// Create submits the order and announces it on the bus.
func (s *Service) Create(ctx context.Context, draft backend.OrderDraft) (*backend.Order, error) {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required to place an order")
	}
	order, err := s.api.CreateOrder(ctx, draft)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(events.OrderCreated, events.Payload{OrderID: order.ID, Principal: id.Principal})
	return order, nil
}

// List returns the caller's orders, newest first, through the per-identity
// cache.
func (s *Service) List(ctx context.Context) ([]backend.Order, error) {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	var orders []backend.Order
	err := s.cached(ctx, "order_list", s.cache.OrderListKey(id.Principal), s.cfg.OrderListTTL, &orders, func(ctx context.Context) (any, error) {
		return s.api.ListOrders(ctx)
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Get returns one of the caller's orders, or nil when it does not exist or
// belongs to someone else.
func (s *Service) Get(ctx context.Context, orderID int64) (*backend.Order, error) {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return s.cachedOrder(ctx, "order_detail", s.cache.OrderDetailKey(id.Principal, orderID), s.cfg.OrderDetailTTL, func(ctx context.Context) (*backend.Order, error) {
		return s.api.GetOrder(ctx, orderID)
	})
}

// Cancel cancels one of the caller's orders and announces the mutation. The
// backend rejects cancellation of orders that already left the pending state.
func (s *Service) Cancel(ctx context.Context, orderID int64) (*backend.Order, error) {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	order, err := s.api.CancelOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	s.bus.Publish(events.OrderCancelled, events.Payload{OrderID: orderID, Principal: id.Principal})
	return order, nil
}

// ListAll returns every order through the shared admin cache.
func (s *Service) ListAll(ctx context.Context) ([]backend.Order, error) {
	var orders []backend.Order
	err := s.cached(ctx, "admin_order_list", s.cache.AdminOrderListKey(), s.cfg.OrderListTTL, &orders, func(ctx context.Context) (any, error) {
		return s.api.GetAllOrders(ctx)
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetAny returns any order without an ownership check, or nil when absent.
func (s *Service) GetAny(ctx context.Context, orderID int64) (*backend.Order, error) {
	return s.cachedOrder(ctx, "admin_order_detail", s.cache.AdminOrderDetailKey(orderID), s.cfg.OrderDetailTTL, func(ctx context.Context) (*backend.Order, error) {
		return s.api.GetOrderByID(ctx, orderID)
	})
}

// UpdateStatus moves an order to the given status. A no-op transition is
// rejected before the backend is called.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status backend.OrderStatus) (*backend.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]string{"status": "must be one of pending, processing, shipped, delivered, cancelled"})
	}

	current, err := s.GetAny(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if current.Status == status {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order already has that status").
			WithDetails(map[string]string{"status": string(status)})
	}

	order, err := s.api.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	s.bus.Publish(events.OrderStatusUpdated, events.Payload{OrderID: orderID})
	return order, nil
}

// cached resolves a list-shaped query through the cache. Cache failures
// degrade to a direct backend call.
func (s *Service) cached(ctx context.Context, name, key string, ttl time.Duration, out any, fetch func(context.Context) (any, error)) error {
	if raw, err := s.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(raw), out); err == nil {
			s.m.IncCacheHit(name)
			return nil
		}
		s.logg.Warn(ctx, "discarding undecodable cache entry "+key)
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.logg.Warn(ctx, "cache read failed for "+key)
	}
	s.m.IncCacheMiss(name)

	value, err := fetch(ctx)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cache entry")
	}
	if err := s.cache.Set(ctx, key, string(encoded), ttl); err != nil {
		s.logg.Warn(ctx, "cache write failed for "+key)
	}
	return json.Unmarshal(encoded, out)
}

// cachedOrder resolves a single order through the cache. Absent orders are
// not cached; the nil convention from the backend client is preserved.
func (s *Service) cachedOrder(ctx context.Context, name, key string, ttl time.Duration, fetch func(context.Context) (*backend.Order, error)) (*backend.Order, error) {
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var order backend.Order
		if err := json.Unmarshal([]byte(raw), &order); err == nil {
			s.m.IncCacheHit(name)
			return &order, nil
		}
		s.logg.Warn(ctx, "discarding undecodable cache entry "+key)
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.logg.Warn(ctx, "cache read failed for "+key)
	}
	s.m.IncCacheMiss(name)

	order, err := fetch(ctx)
	if err != nil || order == nil {
		return order, err
	}
	encoded, err := json.Marshal(order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cache entry")
	}
	if err := s.cache.Set(ctx, key, string(encoded), ttl); err != nil {
		s.logg.Warn(ctx, "cache write failed for "+key)
	}
	return order, nil
}

func (s *Service) invalidate(keys ...string) {
	if err := s.cache.Del(context.Background(), keys...); err != nil {
		s.logg.Warn(context.Background(), "cache invalidation failed")
	}
}
