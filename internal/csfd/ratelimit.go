package csfd

import (
	"context"
	"sync"
	"time"
)

// RateLimiter spaces requests so that two of them are never closer together
// than 1/rate, process-wide. The zero value is not usable, use
// NewRateLimiter.
type RateLimiter struct {
	minInterval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewRateLimiter creates a rate limiter allowing requestsPerSecond requests
// per second.
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	return &RateLimiter{
		minInterval: time.Duration(float64(time.Second) / requestsPerSecond),
	}
}

// MinInterval returns the minimum interval between two requests.
func (l *RateLimiter) MinInterval() time.Duration {
	return l.minInterval
}

// Wait blocks until a request is allowed to go out. The first call never
// blocks. Concurrent callers are serialized, so no two of them proceed
// within less than MinInterval of each other. A canceled context aborts
// the wait without consuming a slot.
func (l *RateLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.last.IsZero() {
		if wait := l.minInterval - time.Since(l.last); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	l.last = time.Now()
	return nil
}
