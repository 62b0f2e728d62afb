package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock is a mutex-guarded manual clock shared between the limiter's
// Clock and Sleep hooks so that waiting advances time deterministically.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	slept  []time.Duration
	sleeps int
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.slept = append(c.slept, d)
	c.sleeps++
	c.mu.Unlock()
	return nil
}

func newTestLimiter(key, token WindowConfig) (*RateLimiter, *fakeClock) {
	clock := newFakeClock()
	limiter := NewRateLimiter(key, token)
	limiter.Clock = clock.Now
	limiter.Sleep = clock.Sleep
	return limiter, clock
}

func TestAcquireImmediateWhenBothWindowsHaveHeadroom(t *testing.T) {
	limiter, clock := newTestLimiter(
		WindowConfig{Capacity: 3, Interval: 10 * time.Second},
		WindowConfig{Capacity: 2, Interval: 10 * time.Second},
	)

	require.NoError(t, limiter.Acquire(context.Background()))
	require.NoError(t, limiter.Acquire(context.Background()))
	require.Zero(t, clock.sleeps)

	keyCount, tokenCount := limiter.Snapshot()
	require.Equal(t, 2, keyCount)
	require.Equal(t, 2, tokenCount)
}

func TestAcquireWaitsForBindingWindow(t *testing.T) {
	limiter, clock := newTestLimiter(
		WindowConfig{Capacity: 10, Interval: 10 * time.Second},
		WindowConfig{Capacity: 2, Interval: 10 * time.Second},
	)

	require.NoError(t, limiter.Acquire(context.Background()))
	clock.Advance(3 * time.Second)
	require.NoError(t, limiter.Acquire(context.Background()))

	// Token window is now full. The oldest grant is 3s old, so the wait
	// must be interval - age = 7s.
	require.NoError(t, limiter.Acquire(context.Background()))
	require.Equal(t, []time.Duration{7 * time.Second}, clock.slept)

	keyCount, tokenCount := limiter.Snapshot()
	require.Equal(t, 3, keyCount)
	require.Equal(t, 2, tokenCount)
}

func TestAcquireTakesLargerWaitWhenBothSaturated(t *testing.T) {
	limiter, clock := newTestLimiter(
		WindowConfig{Capacity: 2, Interval: 20 * time.Second},
		WindowConfig{Capacity: 2, Interval: 10 * time.Second},
	)

	require.NoError(t, limiter.Acquire(context.Background()))
	require.NoError(t, limiter.Acquire(context.Background()))

	// Key window frees a slot after 20s, token window after 10s. The key
	// window binds; after one 20s wait both have headroom again.
	require.NoError(t, limiter.Acquire(context.Background()))
	require.Equal(t, []time.Duration{20 * time.Second}, clock.slept)
}

func TestAcquireNeverExceedsCapacityWithinWindow(t *testing.T) {
	limiter, clock := newTestLimiter(
		WindowConfig{Capacity: 300, Interval: 10 * time.Second},
		WindowConfig{Capacity: 100, Interval: 10 * time.Second},
	)

	for i := 0; i < 250; i++ {
		require.NoError(t, limiter.Acquire(context.Background()))
		keyCount, tokenCount := limiter.Snapshot()
		require.LessOrEqual(t, keyCount, 300)
		require.LessOrEqual(t, tokenCount, 100)
	}

	// The token ceiling binds first: 100 back-to-back grants, then one
	// full-interval wait per batch of 100.
	require.Equal(t, 2, clock.sleeps)
}

func TestAcquireConcurrentCallersDoNotOverAdmit(t *testing.T) {
	const callers = 50

	limiter := NewRateLimiter(
		WindowConfig{Capacity: callers, Interval: time.Minute},
		WindowConfig{Capacity: callers, Interval: time.Minute},
	)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, limiter.Acquire(context.Background()))
		}()
	}
	wg.Wait()

	keyCount, tokenCount := limiter.Snapshot()
	require.Equal(t, callers, keyCount)
	require.Equal(t, callers, tokenCount)
}

func TestAcquireRacingForLastPermit(t *testing.T) {
	// Capacity 1 with a short interval: concurrent callers must be
	// admitted strictly one interval apart, never together.
	limiter := NewRateLimiter(
		WindowConfig{Capacity: 1, Interval: 20 * time.Millisecond},
		WindowConfig{Capacity: 1, Interval: 20 * time.Millisecond},
	)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, limiter.Acquire(context.Background()))
		}()
	}
	wg.Wait()

	// Four admissions through a one-permit window must span at least
	// three full intervals.
	require.GreaterOrEqual(t, time.Since(start), 55*time.Millisecond)

	keyCount, _ := limiter.Snapshot()
	require.LessOrEqual(t, keyCount, 1)
}

func TestAcquireReturnsContextError(t *testing.T) {
	limiter, _ := newTestLimiter(
		WindowConfig{Capacity: 1, Interval: 10 * time.Second},
		WindowConfig{Capacity: 1, Interval: 10 * time.Second},
	)

	require.NoError(t, limiter.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, limiter.Acquire(ctx), context.Canceled)
}

func TestNewRateLimiterDefaults(t *testing.T) {
	limiter := NewRateLimiter(WindowConfig{}, WindowConfig{})
	require.Equal(t, DefaultKeyWindow.Capacity, limiter.key.capacity)
	require.Equal(t, DefaultTokenWindow.Capacity, limiter.token.capacity)
	require.Equal(t, DefaultKeyWindow.Interval, limiter.key.interval)
	require.Equal(t, DefaultTokenWindow.Interval, limiter.token.interval)
}
