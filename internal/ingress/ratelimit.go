package ingress

import (
	"sync"
	"time"
)

// ──────────────────────────────────────────────────────────────────────
// Token Bucket Rate Limiter
//
// Capacity 100, refill rate 100 tokens/s, shared per SDK instance (spec
// §4.1) — not per caller identity, since the core has no notion of
// caller address. Refill is computed lazily by elapsed wall time at each
// acquisition, guarded by a single mutex.
//
// Adapted from the teacher's per-IP api.RateLimiter: same lazy-refill
// math, collapsed from a map-of-buckets down to one bucket.
// ──────────────────────────────────────────────────────────────────────

const (
	bucketCapacity = 100.0
	refillPerSec   = 100.0
)

// RateLimiter is a single shared token bucket.
type RateLimiter struct {
	mu       sync.Mutex
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter returns a limiter with a full bucket.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{tokens: bucketCapacity, lastSeen: time.Now()}
}

// Acquire takes exactly one token. On success it returns true; on an
// empty bucket it returns false and the duration until a token becomes
// available.
func (rl *RateLimiter) Acquire() (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastSeen).Seconds()
	rl.tokens += elapsed * refillPerSec
	if rl.tokens > bucketCapacity {
		rl.tokens = bucketCapacity
	}
	rl.lastSeen = now

	if rl.tokens >= 1.0 {
		rl.tokens--
		return true, 0
	}

	retryAfter := time.Duration((1.0-rl.tokens)/refillPerSec*1000) * time.Millisecond
	return false, retryAfter
}

// Utilization reports the fraction of bucket capacity currently
// consumed, used by the health interface (spec §4.7, §6).
func (rl *RateLimiter) Utilization() float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return 1.0 - rl.tokens/bucketCapacity
}
