package retry

import (
	"context"
	"fmt"
	"time"
)

// Config defines retry behavior for a wrapped operation.
type Config struct {
	// MaxRetries is the number of retries after the first attempt,
	// so the operation runs at most MaxRetries+1 times.
	MaxRetries int

	// BaseDelay is the backoff unit: attempt n waits 2^n * BaseDelay.
	BaseDelay time.Duration
}

// DefaultConfig provides sensible defaults: up to 3 total attempts,
// waiting 1s then 2s between them.
var DefaultConfig = Config{
	MaxRetries: 2,
	BaseDelay:  time.Second,
}

// Executor runs operations with bounded exponential-backoff retry,
// consulting IsTransient to decide whether a failure is worth another
// attempt.
type Executor struct {
	cfg Config

	// OnRetry, if set, is called before each backoff wait.
	OnRetry func(op string, attempt int, delay time.Duration, err error)
}

// NewExecutor creates an executor with the given config. MaxRetries 0
// is honored and disables retries; only negative values and a zero
// BaseDelay fall back to DefaultConfig.
func NewExecutor(cfg Config) *Executor {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = DefaultConfig.MaxRetries
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultConfig.BaseDelay
	}
	return &Executor{cfg: cfg}
}

// Do executes fn, retrying transient failures with exponential backoff.
// The operation name is used only for diagnostics. Errors are annotated
// with the attempt count; non-transient errors propagate immediately.
func Do[T any](ctx context.Context, e *Executor, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	for attempt := 0; ; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		if !IsTransient(err) || attempt >= e.cfg.MaxRetries {
			return zero, fmt.Errorf("%s failed after %d attempt(s): %w", op, attempt+1, err)
		}

		delay := e.cfg.BaseDelay * (1 << attempt)
		if e.OnRetry != nil {
			e.OnRetry(op, attempt+1, delay, err)
		}

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("%s aborted during backoff: %w", op, ctx.Err())
		case <-time.After(delay):
		}
	}
}
