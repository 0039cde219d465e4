package controllers

import (
	"net/http"

	"github.com/secondbowl/storefront-gateway/api/responses"
	"github.com/secondbowl/storefront-gateway/pkg/config"
	pkgerrors "github.com/secondbowl/storefront-gateway/pkg/errors"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
	"github.com/secondbowl/storefront-gateway/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SecondBowl-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the gateway's own dependencies. The remote backend is
// deliberately excluded: its reachability is reported by the connectivity
// endpoint and must not flap this service's readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SecondBowl-Env", cfg.App.Env)

		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
