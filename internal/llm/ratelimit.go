package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// rateLimiter paces requests to at most n per minute. A nil limiter never
// blocks.
type rateLimiter struct {
	limiter *rate.Limiter
}

// newRateLimiter returns nil when requestsPerMinute is not positive.
func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	return &rateLimiter{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
	}
}

// wait blocks until a request may be sent or the context is canceled.
func (rl *rateLimiter) wait(ctx context.Context) error {
	if rl == nil {
		return nil
	}
	if err := rl.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter canceled: %w", err)
	}
	return nil
}
