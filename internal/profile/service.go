// Package profile fronts the backend profile and role endpoints. Both reads
// are cached; the role cache is what keeps the admin gate from hitting the
// backend on every request.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
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

	ProfileKey(principal string) string
	RoleKey(principal string) string
}

type Service struct {
	api   backend.API
	cache Cache
	bus   *events.Bus
	cfg   config.CacheConfig
	logg  *logger.Logger
	m     *metrics.GatewayMetrics
}

func NewService(api backend.API, cache Cache, bus *events.Bus, cfg config.CacheConfig, logg *logger.Logger, m *metrics.GatewayMetrics) *Service {
	s := &Service{api: api, cache: cache, bus: bus, cfg: cfg, logg: logg, m: m}

	bus.Subscribe(events.ProfileSaved, func(p events.Payload) {
		if err := cache.Del(context.Background(), cache.ProfileKey(p.Principal)); err != nil {
			logg.Warn(context.Background(), "profile cache invalidation failed")
		}
	})

	return s
}

// GetCallerProfile returns the caller's saved profile, or nil before the
// first save.
func (s *Service) GetCallerProfile(ctx context.Context) (*backend.UserProfile, error) {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	key := s.cache.ProfileKey(id.Principal)
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var profile backend.UserProfile
		if err := json.Unmarshal([]byte(raw), &profile); err == nil {
			s.m.IncCacheHit("profile")
			return &profile, nil
		}
		s.logg.Warn(ctx, "discarding undecodable cache entry "+key)
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.logg.Warn(ctx, "cache read failed for "+key)
	}
	s.m.IncCacheMiss("profile")

	profile, err := s.api.GetCallerUserProfile(ctx)
	if err != nil || profile == nil {
		return profile, err
	}
	encoded, err := json.Marshal(profile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cache entry")
	}
	if err := s.cache.Set(ctx, key, string(encoded), s.cfg.ProfileTTL); err != nil {
		s.logg.Warn(ctx, "cache write failed for "+key)
	}
	return profile, nil
}

// SaveCallerProfile validates and stores the caller's profile, then
// announces the save so the cached copy is dropped.
func (s *Service) SaveCallerProfile(ctx context.Context, profile backend.UserProfile) error {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	profile.Name = strings.TrimSpace(profile.Name)
	profile.Phone = strings.TrimSpace(profile.Phone)
	profile.Location = strings.TrimSpace(profile.Location)
	if profile.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "profile validation failed").
			WithDetails(map[string]string{"name": "name is required"})
	}

	if err := s.api.SaveCallerUserProfile(ctx, profile); err != nil {
		return err
	}
	s.bus.Publish(events.ProfileSaved, events.Payload{Principal: id.Principal})
	return nil
}

// GetCallerRole resolves the caller's role through the role cache.
// Unauthenticated callers are guests; no backend call is made for them.
func (s *Service) GetCallerRole(ctx context.Context) (backend.Role, error) {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return backend.RoleGuest, nil
	}

	key := s.cache.RoleKey(id.Principal)
	if raw, err := s.cache.Get(ctx, key); err == nil {
		role := backend.Role(raw)
		if role.IsValid() {
			s.m.IncCacheHit("role")
			return role, nil
		}
		s.logg.Warn(ctx, "discarding undecodable cache entry "+key)
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.logg.Warn(ctx, "cache read failed for "+key)
	}
	s.m.IncCacheMiss("role")

	role, err := s.api.GetCallerRole(ctx)
	if err != nil {
		return "", err
	}
	if err := s.cache.Set(ctx, key, string(role), s.cfg.RoleTTL); err != nil {
		s.logg.Warn(ctx, "cache write failed for "+key)
	}
	return role, nil
}

// InitializeCaller runs the first-login flow: fetching the profile makes the
// backend register the identity if it has never been seen. The profile being
// absent is normal for a fresh account.
func (s *Service) InitializeCaller(ctx context.Context) error {
	if _, ok := auth.FromContext(ctx); !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	_, err := s.api.GetCallerUserProfile(ctx)
	return err
}
