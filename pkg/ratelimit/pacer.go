// Package ratelimit implements client-side request pacing for the public
// catalog API. The catalog publishes no rate limit headers, so pacing is
// a fixed minimum interval between requests rather than header-driven
// tracking.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for request pacing.
var (
	catalogPacerWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_pacer_waits_total",
		Help: "Total number of requests delayed by the pacer",
	})

	catalogPacerWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_pacer_wait_seconds",
		Help:    "Time requests spent waiting in the pacer",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2},
	})
)

// Pacer enforces a minimum interval between outgoing requests.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	logger   zerolog.Logger
}

// NewPacer creates a pacer with the given minimum interval.
// A zero or negative interval disables pacing.
func NewPacer(interval time.Duration, logger zerolog.Logger) *Pacer {
	return &Pacer{
		interval: interval,
		logger:   logger,
	}
}

// Wait blocks until the minimum interval since the previous request has
// elapsed, or the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.interval <= 0 {
		return nil
	}

	p.mu.Lock()
	now := time.Now()
	wait := p.interval - now.Sub(p.last)
	if wait < 0 {
		wait = 0
	}
	// Reserve the slot before sleeping so concurrent callers queue up.
	p.last = now.Add(wait)
	p.mu.Unlock()

	if wait == 0 {
		return nil
	}

	catalogPacerWaitsTotal.Inc()
	catalogPacerWaitSeconds.Observe(wait.Seconds())

	p.logger.Debug().
		Dur("wait", wait).
		Msg("Pacing catalog request")

	select {
	case <-ctx.Done():
		return fmt.Errorf("pacer wait cancelled: %w", ctx.Err())
	case <-time.After(wait):
		return nil
	}
}

// Interval returns the configured minimum request interval.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}
