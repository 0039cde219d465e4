package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/secondbowl/storefront-gateway/pkg/config"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
)

const (
	keyNamespace  = "sb"
	cachePrefix   = "cache"
	ordersPrefix  = "orders"
	adminPrefix   = "admin"
	profilePrefix = "profile"
	rolePrefix    = "role"
)

// ErrCacheMiss is returned when a cached entry is absent.
var ErrCacheMiss = redis.Nil

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client wraps the redis connection used for query caching.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New bootstraps a Redis client with pooling/timeouts and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{store: raw, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// Set stores a string value with an optional TTL.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Set(ctx, key, value, ttl).Err()
}

// Get returns a string value stored at key. Misses surface ErrCacheMiss.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if c.store == nil {
		return "", errors.New("redis client not initialized")
	}
	return c.store.Get(ctx, key).Result()
}

// Del removes the provided keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Del(ctx, keys...).Err()
}

// OrderListKey names the cached order list for one identity.
func (c *Client) OrderListKey(principal string) string {
	return c.buildKey(cachePrefix, ordersPrefix, "list", principal)
}

// OrderDetailKey names one cached order detail for one identity. Scoping by
// principal keeps ownership-checked reads from leaking across callers.
func (c *Client) OrderDetailKey(principal string, orderID int64) string {
	return c.buildKey(cachePrefix, ordersPrefix, "detail", principal, fmt.Sprintf("%d", orderID))
}

// AdminOrderListKey names the cached admin-wide order list.
func (c *Client) AdminOrderListKey() string {
	return c.buildKey(cachePrefix, adminPrefix, ordersPrefix, "list")
}

// AdminOrderDetailKey names one cached order detail fetched without an
// ownership check.
func (c *Client) AdminOrderDetailKey(orderID int64) string {
	return c.buildKey(cachePrefix, adminPrefix, ordersPrefix, "detail", fmt.Sprintf("%d", orderID))
}

// ProfileKey names the cached profile for one identity.
func (c *Client) ProfileKey(principal string) string {
	return c.buildKey(cachePrefix, profilePrefix, principal)
}

// RoleKey names the cached role for one identity.
func (c *Client) RoleKey(principal string) string {
	return c.buildKey(cachePrefix, rolePrefix, principal)
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

// Close shuts down the underlying client if available.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func (c *Client) buildKey(parts ...string) string {
	if len(parts) == 0 {
		return keyNamespace
	}
	clean := []string{keyNamespace}
	for _, part := range parts {
		if part == "" {
			continue
		}
		clean = append(clean, strings.TrimSpace(part))
	}
	return strings.Join(clean, ":")
}
