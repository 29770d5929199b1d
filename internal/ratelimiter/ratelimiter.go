package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter throttles probe submission using the token bucket algorithm.
//
// This implementation wraps golang.org/x/time/rate to provide:
//   - Token bucket rate limiting (allows bursts while enforcing sustained rate)
//   - Context-aware waiting (respects cancellation)
//   - Thread-safe operation
//
// The mount-point probe scheduler uses this to cap how fast accessibility
// probes are launched, so that a host with hundreds of mounts is not hit
// with a syscall storm the moment enumeration starts.
//
// Thread safety:
// All methods are safe for concurrent use.
type RateLimiter struct {
	limiter *rate.Limiter
}

// New creates a new RateLimiter with the specified rate and burst capacity.
//
// Parameters:
//   - probesPerSecond: Maximum sustained rate (tokens added per second)
//   - burst: Maximum burst size (bucket capacity in tokens)
//
// Special cases:
//   - probesPerSecond = 0: No rate limiting (unlimited)
//   - burst = 0: burst defaults to probesPerSecond
//
// Returns a configured RateLimiter.
func New(probesPerSecond, burst uint) *RateLimiter {
	if probesPerSecond == 0 {
		// Unlimited rate: use a very high limit
		// rate.Inf would be ideal but has edge cases, so use a large value
		probesPerSecond = 1_000_000_000
		burst = probesPerSecond
	}
	if burst == 0 {
		burst = probesPerSecond
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(probesPerSecond), int(burst)),
	}
}

// Allow checks if a probe may be launched right now without waiting.
//
// Returns:
//   - true if the probe is allowed (token consumed)
//   - false if no tokens are available
//
// Thread safety:
// Safe to call concurrently.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}

// Wait blocks until a token is available or the context is cancelled.
//
// The probe scheduler calls this before dispatching each probe, so a
// cancelled enumeration stops launching new probes immediately.
//
// Parameters:
//   - ctx: Controls the maximum wait time. If cancelled, returns context error.
//
// Returns:
//   - nil if a token was acquired
//   - context error if the context was cancelled before a token was available
//
// Thread safety:
// Safe to call concurrently.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
