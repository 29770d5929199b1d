package ratelimiter

import (
	"context"
	"testing"
	"time"
)

// TestNew verifies rate limiter creation with different parameters.
func TestNew(t *testing.T) {
	tests := []struct {
		name            string
		probesPerSecond uint
		burst           uint
	}{
		{
			name:            "standard rate",
			probesPerSecond: 100,
			burst:           200,
		},
		{
			name:            "low rate",
			probesPerSecond: 1,
			burst:           2,
		},
		{
			name:            "unlimited (zero rate)",
			probesPerSecond: 0,
			burst:           0,
		},
		{
			name:            "zero burst defaults to rate",
			probesPerSecond: 50,
			burst:           0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := New(tt.probesPerSecond, tt.burst)
			if limiter == nil {
				t.Fatal("New() returned nil")
			}
			if limiter.limiter == nil {
				t.Fatal("internal limiter is nil")
			}
		})
	}
}

// TestAllow verifies that Allow() correctly enforces rate limits.
func TestAllow(t *testing.T) {
	// Create limiter with 10 probes/s, burst of 10
	limiter := New(10, 10)

	// First burst should be allowed (up to burst capacity)
	for i := 0; i < 10; i++ {
		if !limiter.Allow() {
			t.Fatalf("probe %d should be allowed (within burst)", i)
		}
	}

	// Next probe should be rate-limited (bucket empty)
	if limiter.Allow() {
		t.Fatal("probe should be rate-limited after burst exhausted")
	}

	// Wait for token replenishment (100ms for 10 probes/s = 1 token)
	time.Sleep(110 * time.Millisecond)

	if !limiter.Allow() {
		t.Fatal("probe should be allowed after token replenishment")
	}
}

// TestAllowUnlimited verifies that a zero rate never throttles.
func TestAllowUnlimited(t *testing.T) {
	limiter := New(0, 0)

	for i := 0; i < 10_000; i++ {
		if !limiter.Allow() {
			t.Fatalf("probe %d throttled by unlimited limiter", i)
		}
	}
}

// TestWait verifies that Wait() blocks until a token is available.
func TestWait(t *testing.T) {
	// Create limiter with 10 probes/s, burst of 1
	limiter := New(10, 1)

	ctx := context.Background()

	// First probe should be immediate (within burst)
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("first probe should succeed: %v", err)
	}

	// Second probe should wait (bucket empty)
	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("second probe should succeed after waiting: %v", err)
	}
	elapsed := time.Since(start)

	// Should have waited approximately 100ms (1/10 second for 10 probes/s)
	// Allow some margin for timing jitter
	if elapsed < 50*time.Millisecond || elapsed > 200*time.Millisecond {
		t.Fatalf("wait time %v outside expected range 50ms-200ms", elapsed)
	}
}

// TestWaitContextCancellation verifies that Wait() respects context cancellation.
func TestWaitContextCancellation(t *testing.T) {
	// Create limiter with very low rate to force waiting
	limiter := New(1, 1)

	// Exhaust the burst
	if !limiter.Allow() {
		t.Fatal("first probe should be allowed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// Wait should fail with context deadline exceeded
	err := limiter.Wait(ctx)
	if err == nil {
		t.Fatal("Wait() should return error when context is cancelled")
	}
	if ctx.Err() == nil {
		t.Fatal("context should be expired")
	}
}
