// Package connectivity probes the remote backend on a fixed cadence and
// exposes the last observed state. The state feeds the status banner and a
// gauge; it never gates requests.
package connectivity

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/secondbowl/storefront-gateway/pkg/backend"
	"github.com/secondbowl/storefront-gateway/pkg/config"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
	"github.com/secondbowl/storefront-gateway/pkg/metrics"
)

// State is the backend reachability as last observed.
type State string

const (
	StateChecking    State = "checking"
	StateReachable   State = "reachable"
	StateUnreachable State = "unreachable"
)

func (s State) gaugeValue() float64 {
	switch s {
	case StateReachable:
		return 1
	case StateUnreachable:
		return 0
	default:
		return -1
	}
}

// Monitor runs periodic health probes. A cycle only reports Unreachable after
// every attempt in its retry budget has failed.
type Monitor struct {
	api        backend.API
	logg       *logger.Logger
	m          *metrics.GatewayMetrics
	interval   time.Duration
	attempts   int
	retryDelay time.Duration
	state      atomic.Value
	sleep      func(context.Context, time.Duration)
}

// NewMonitor builds a monitor in the Checking state.
func NewMonitor(api backend.API, cfg config.ConnectivityConfig, logg *logger.Logger, m *metrics.GatewayMetrics) *Monitor {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 3
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = time.Second
	}

	mon := &Monitor{
		api:        api,
		logg:       logg,
		m:          m,
		interval:   interval,
		attempts:   attempts,
		retryDelay: retryDelay,
		sleep:      sleepCtx,
	}
	mon.setState(StateChecking)
	return mon
}

// State returns the last observed reachability.
func (mon *Monitor) State() State {
	if s, ok := mon.state.Load().(State); ok {
		return s
	}
	return StateChecking
}

// Start probes immediately, then on every interval tick until the context is
// cancelled.
func (mon *Monitor) Start(ctx context.Context) {
	go func() {
		mon.runCycle(ctx)
		ticker := time.NewTicker(mon.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				mon.runCycle(ctx)
			}
		}
	}()
}

// runCycle performs one probe cycle with the retry budget.
func (mon *Monitor) runCycle(ctx context.Context) {
	for attempt := 1; attempt <= mon.attempts; attempt++ {
		if ctx.Err() != nil {
			return
		}
		if err := mon.api.ConnectivityCheck(ctx); err == nil {
			mon.transition(ctx, StateReachable)
			return
		}
		if attempt < mon.attempts {
			mon.sleep(ctx, mon.retryDelay)
		}
	}
	mon.transition(ctx, StateUnreachable)
}

func (mon *Monitor) transition(ctx context.Context, next State) {
	prev := mon.State()
	mon.setState(next)
	if prev == next {
		return
	}
	switch next {
	case StateReachable:
		mon.logg.Info(ctx, "backend reachable")
	case StateUnreachable:
		mon.logg.Warn(ctx, "backend unreachable after retry budget")
	}
}

func (mon *Monitor) setState(s State) {
	mon.state.Store(s)
	mon.m.SetConnectivity(s.gaugeValue())
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
