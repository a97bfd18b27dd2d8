// Package ratelimit throttles outgoing retrieval calls across a batch.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces requests to a fixed number per second.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a limiter allowing requestsPerSecond sustained throughput
// with a burst of one. A zero or negative limit disables throttling.
func New(requestsPerSecond float64) *Limiter {
	if requestsPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1)}
}

// Wait blocks until the next request is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports without blocking whether a request may proceed now.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Limit returns the configured requests per second, zero meaning
// unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}
