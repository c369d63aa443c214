package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HealthPinger is implemented by store drivers that can verify connectivity.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}

// HealthChecker monitors store health via periodic pings.
type HealthChecker struct {
	pinger       HealthPinger
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

// NewHealthChecker creates a store health checker. It starts unhealthy until
// the first successful probe.
func NewHealthChecker(p HealthPinger, log zerolog.Logger, probeTimeout time.Duration) *HealthChecker {
	hc := &HealthChecker{pinger: p, log: log, probeTimeout: probeTimeout}
	hc.healthy.Store(0)
	return hc
}

// Name returns the checker name.
func (hc *HealthChecker) Name() string { return "store" }

// IsHealthy returns the cached health status (non-blocking).
func (hc *HealthChecker) IsHealthy() bool { return hc.healthy.Load() == 1 }

// Start begins periodic health checking until ctx is cancelled.
func (hc *HealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		to := hc.probeTimeout
		if to <= 0 {
			to = 2 * time.Second
		}
		probeCtx, cancel := context.WithTimeout(ctx, to)
		defer cancel()

		if err := hc.pinger.HealthPing(probeCtx); err != nil {
			if hc.healthy.Swap(0) == 1 {
				hc.log.Error().Err(err).Msg("store health: DOWN")
			}
			return
		}
		if hc.healthy.Swap(1) == 0 {
			hc.log.Info().Msg("store health: UP")
		}
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
