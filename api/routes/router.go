package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/secondbowl/storefront-gateway/api/controllers"
	"github.com/secondbowl/storefront-gateway/api/middleware"
	"github.com/secondbowl/storefront-gateway/internal/cart"
	checkoutsvc "github.com/secondbowl/storefront-gateway/internal/checkout"
	"github.com/secondbowl/storefront-gateway/internal/orders"
	"github.com/secondbowl/storefront-gateway/internal/profile"
	"github.com/secondbowl/storefront-gateway/pkg/backend"
	"github.com/secondbowl/storefront-gateway/pkg/config"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
	"github.com/secondbowl/storefront-gateway/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisP redis.Pinger,
	carts *cart.Store,
	checkoutService *checkoutsvc.Service,
	orderService *orders.Service,
	profileService *profile.Service,
	monitor controllers.ConnectivityReader,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/menu", controllers.Menu())
		r.Get("/content", controllers.Content())
		r.Get("/connectivity", controllers.ConnectivityStatus(monitor))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Identity(cfg.Identity, logg))
		r.Use(middleware.CartSession(logg))

		r.Route("/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(carts, logg))
			r.Delete("/", controllers.CartClear(carts, logg))
			r.Post("/items", controllers.CartAdd(carts, logg))
			r.Post("/items/{lineId}/increment", controllers.CartIncrement(carts, logg))
			r.Post("/items/{lineId}/decrement", controllers.CartDecrement(carts, logg))
			r.Delete("/items/{lineId}", controllers.CartRemove(carts, logg))
		})

		r.Get("/v1/me/role", controllers.CallerRole(profileService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(logg))

			r.Post("/v1/checkout", controllers.Checkout(checkoutService, logg))

			r.Route("/v1/orders", func(r chi.Router) {
				r.Get("/", controllers.OrdersList(orderService, logg))
				r.Get("/{orderId}", controllers.OrderDetail(orderService, logg))
				r.Post("/{orderId}/cancel", controllers.OrderCancel(orderService, logg))
			})

			r.Route("/v1/profile", func(r chi.Router) {
				r.Get("/", controllers.ProfileFetch(profileService, logg))
				r.Put("/", controllers.ProfileSave(profileService, logg))
				r.Post("/initialize", controllers.ProfileInitialize(profileService, logg))
			})
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Identity(cfg.Identity, logg))
		r.Use(middleware.RequireAuth(logg))
		r.Use(middleware.RequireRole(backend.RoleAdmin, profileService, logg))

		r.Route("/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrdersList(orderService, logg))
			r.Get("/statuses", controllers.OrderStatuses())
			r.Get("/{orderId}", controllers.AdminOrderDetail(orderService, logg))
			r.Post("/{orderId}/status", controllers.AdminOrderStatusUpdate(orderService, logg))
		})
	})

	return r
}
