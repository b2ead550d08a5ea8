package generation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RetryPolicy retries one provider a fixed number of times with a fixed delay.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultImageRetry matches the image capability: two attempts, two seconds apart.
var DefaultImageRetry = RetryPolicy{MaxAttempts: 2, Delay: 2 * time.Second}

// Do runs fn until it succeeds, attempts are exhausted, or ctx is done.
// The last error is returned.
func Do[T any](ctx context.Context, policy RetryPolicy, log zerolog.Logger, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := fn(ctx, attempt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", attempts).Dur("delay", policy.Delay).Msg("provider attempt failed, retrying")

		if policy.Delay > 0 {
			timer := time.NewTimer(policy.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			return zero, ctx.Err()
		}
	}
	return zero, lastErr
}
