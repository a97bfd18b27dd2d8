package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestNewLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		requestsPerSecond float64
		wantLimit         float64
	}{
		{
			name:              "zero is unlimited",
			requestsPerSecond: 0,
			wantLimit:         0,
		},
		{
			name:              "negative is unlimited",
			requestsPerSecond: -1,
			wantLimit:         0,
		},
		{
			name:              "one per second",
			requestsPerSecond: 1,
			wantLimit:         1,
		},
		{
			name:              "fractional",
			requestsPerSecond: 0.5,
			wantLimit:         0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			limiter := New(tt.requestsPerSecond)
			if got := limiter.Limit(); got != tt.wantLimit {
				t.Fatalf("Limit() = %f, want %f", got, tt.wantLimit)
			}
		})
	}
}

func TestUnlimitedDoesNotBlock(t *testing.T) {
	t.Parallel()

	limiter := New(0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for range 10 {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
}

func TestLimitedAllow(t *testing.T) {
	t.Parallel()

	limiter := New(1)

	if !limiter.Allow() {
		t.Fatal("first Allow() = false, want true")
	}
	if limiter.Allow() {
		t.Fatal("second immediate Allow() = true, want false")
	}
}

func TestWaitHonorsCancellation(t *testing.T) {
	t.Parallel()

	limiter := New(0.001)
	limiter.Allow() // consume the burst

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Fatal("Wait() error = nil, want cancellation")
	}
}
