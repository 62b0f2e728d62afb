package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"
)

// DefaultRetryDelay is the fixed pause between a throttled attempt and the
// next admission request.
const DefaultRetryDelay = time.Second

// Executor runs units of work under admission control and absorbs Trello's
// throttle responses with bounded delayed retry. All callers in the process
// share one executor so that retries compete for the same permits.
type Executor struct {
	Limiter *RateLimiter

	// RetryDelay defaults to DefaultRetryDelay when zero.
	RetryDelay time.Duration

	// MaxAttempts caps throttle retries. Zero means retry indefinitely,
	// trusting Trello's throttle window to be short-lived.
	MaxAttempts int

	// Logger, when set, records throttle retries at warn level.
	Logger *logging.Logger

	// OnThrottle, when set, is invoked once per absorbed throttle response
	// (metrics hook).
	OnThrottle func(attempt int)

	// Sleep is injectable for deterministic tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewExecutor builds an executor over the shared limiter.
func NewExecutor(limiter *RateLimiter) *Executor {
	return &Executor{Limiter: limiter, RetryDelay: DefaultRetryDelay}
}

// Run executes work under admission control.
//
// Each attempt first acquires a permit from both rate windows. A throttled
// response (Trello 429) is absorbed: the executor pauses for the fixed
// retry delay and then re-enters acquisition, so the retry consumes fresh
// permits. Any other provider rejection returns a *RemoteServiceError
// carrying the provider's message. Failures that did not originate from a
// Trello response — transport errors, context cancellation, bugs in the
// work itself — propagate unchanged.
func Run[T any](ctx context.Context, ex *Executor, work func(context.Context) (T, error)) (T, error) {
	var zero T
	if ex == nil || ex.Limiter == nil {
		return zero, errors.New("engine: executor not configured")
	}

	for attempt := 1; ; attempt++ {
		if err := ex.Limiter.Acquire(ctx); err != nil {
			return zero, err
		}

		value, err := work(ctx)
		if err == nil {
			return value, nil
		}

		var perr *ProviderError
		if !errors.As(err, &perr) {
			return zero, err
		}

		if !perr.Throttled() {
			return zero, newRemoteServiceError(perr)
		}

		if ex.MaxAttempts > 0 && attempt >= ex.MaxAttempts {
			return zero, fmt.Errorf("engine: throttled on all %d attempts: %w", attempt, perr)
		}

		if ex.OnThrottle != nil {
			ex.OnThrottle(attempt)
		}

		if ex.Logger != nil {
			ex.Logger.Warn("Trello throttled request, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("delay", ex.retryDelay()))
		}

		if err := ex.sleep(ctx, ex.retryDelay()); err != nil {
			return zero, err
		}
	}
}

func (ex *Executor) retryDelay() time.Duration {
	if ex.RetryDelay > 0 {
		return ex.RetryDelay
	}
	return DefaultRetryDelay
}

func (ex *Executor) sleep(ctx context.Context, d time.Duration) error {
	if ex.Sleep != nil {
		return ex.Sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}
