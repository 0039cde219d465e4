package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GatewayMetrics records backend call latency, cache effectiveness and
// backend reachability.
type GatewayMetrics struct {
	backendDuration *prometheus.HistogramVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	connectivity    prometheus.Gauge
}

// NewGatewayMetrics registers the gateway metrics on the provided registerer.
func NewGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	if reg == nil {
		return &GatewayMetrics{}
	}
	backendDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_call_duration_seconds",
		Help:    "Duration of remote backend calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	cacheHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_hits",
		Help: "Query cache hits.",
	}, []string{"cache"})
	cacheMisses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_misses",
		Help: "Query cache misses.",
	}, []string{"cache"})
	connectivity := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "backend_reachable",
		Help: "Backend reachability: 1 reachable, 0 unreachable, -1 checking.",
	})
	reg.MustRegister(backendDuration, cacheHits, cacheMisses, connectivity)
	return &GatewayMetrics{
		backendDuration: backendDuration,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		connectivity:    connectivity,
	}
}

// ObserveBackendCall records the duration for the named backend method.
func (g *GatewayMetrics) ObserveBackendCall(method string, duration time.Duration) {
	if g == nil || g.backendDuration == nil {
		return
	}
	g.backendDuration.WithLabelValues(normalizeLabel(method)).Observe(duration.Seconds())
}

// IncCacheHit increments the hit counter for the named cache.
func (g *GatewayMetrics) IncCacheHit(cache string) {
	if g == nil || g.cacheHits == nil {
		return
	}
	g.cacheHits.WithLabelValues(normalizeLabel(cache)).Inc()
}

// IncCacheMiss increments the miss counter for the named cache.
func (g *GatewayMetrics) IncCacheMiss(cache string) {
	if g == nil || g.cacheMisses == nil {
		return
	}
	g.cacheMisses.WithLabelValues(normalizeLabel(cache)).Inc()
}

// SetConnectivity records the current backend reachability state.
func (g *GatewayMetrics) SetConnectivity(value float64) {
	if g == nil || g.connectivity == nil {
		return
	}
	g.connectivity.Set(value)
}

func normalizeLabel(name string) string {
	if name == "" {
		return "unknown"
	}
	return name
}
