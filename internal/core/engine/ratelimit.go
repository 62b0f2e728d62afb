// Package engine implements the rate-limited request execution core of the
// Trello gateway: a dual-window admission controller and the resilient
// executor that wraps every outbound API call.
package engine

import (
	"context"
	"sync"
	"time"
)

// Trello enforces two independent ceilings on the same 10-second interval:
// one for the API key + token pair, a tighter one for the token alone.
// Every request counts against both.
var (
	DefaultKeyWindow   = WindowConfig{Capacity: 300, Interval: 10 * time.Second}
	DefaultTokenWindow = WindowConfig{Capacity: 100, Interval: 10 * time.Second}
)

// WindowConfig describes one rate ceiling.
type WindowConfig struct {
	Capacity int
	Interval time.Duration
}

// window tracks grant timestamps within the trailing interval.
type window struct {
	capacity int
	interval time.Duration
	grants   []time.Time
}

// prune discards grants older than now - interval.
func (w *window) prune(now time.Time) {
	cutoff := now.Add(-w.interval)
	i := 0
	for i < len(w.grants) && !w.grants[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.grants = append(w.grants[:0], w.grants[i:]...)
	}
}

// waitFor returns how long the caller must wait before this window has
// headroom, or zero if a permit is available now. Assumes prune ran.
func (w *window) waitFor(now time.Time) time.Duration {
	if len(w.grants) < w.capacity {
		return 0
	}
	return w.interval - now.Sub(w.grants[0])
}

// RateLimiter gates outbound Trello calls so that neither the key-pair
// ceiling nor the token ceiling is exceeded across all callers sharing it.
//
// The zero value is not usable; construct with NewRateLimiter and share the
// instance by reference with every component that issues remote calls.
type RateLimiter struct {
	mu    sync.Mutex
	key   window
	token window

	// Clock and Sleep are injectable for deterministic tests. When nil,
	// time.Now and a context-aware timer wait are used.
	Clock func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error

	// OnWait, when set, is invoked with each pause taken while waiting for
	// window headroom (metrics hook).
	OnWait func(d time.Duration)
}

// NewRateLimiter builds a limiter with the given window configurations.
// Zero-valued configs fall back to the Trello defaults.
func NewRateLimiter(key, token WindowConfig) *RateLimiter {
	if key.Capacity <= 0 || key.Interval <= 0 {
		key = DefaultKeyWindow
	}
	if token.Capacity <= 0 || token.Interval <= 0 {
		token = DefaultTokenWindow
	}
	return &RateLimiter{
		key:   window{capacity: key.Capacity, interval: key.Interval},
		token: window{capacity: token.Capacity, interval: token.Interval},
	}
}

// Acquire blocks until both windows have headroom, then records the grant
// in both and returns. It fails only when ctx is canceled while waiting;
// with a background context it always eventually succeeds.
//
// The check and the record happen inside a single critical section spanning
// both windows. Two callers racing for the last permit therefore cannot
// both be admitted, and the combined grant count can never overshoot
// either ceiling.
func (r *RateLimiter) Acquire(ctx context.Context) error {
	for {
		r.mu.Lock()
		now := r.now()
		r.key.prune(now)
		r.token.prune(now)

		wait := r.key.waitFor(now)
		if tokenWait := r.token.waitFor(now); tokenWait > wait {
			wait = tokenWait
		}

		if wait <= 0 {
			r.key.grants = append(r.key.grants, now)
			r.token.grants = append(r.token.grants, now)
			r.mu.Unlock()
			return nil
		}
		r.mu.Unlock()

		if r.OnWait != nil {
			r.OnWait(wait)
		}
		if err := r.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// Snapshot reports the current grant counts per window, for health checks
// and diagnostics.
func (r *RateLimiter) Snapshot() (keyInFlight, tokenInFlight int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.key.prune(now)
	r.token.prune(now)
	return len(r.key.grants), len(r.token.grants)
}

func (r *RateLimiter) now() time.Time {
	if r.Clock != nil {
		return r.Clock()
	}
	return time.Now()
}

func (r *RateLimiter) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep != nil {
		return r.Sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
