package services

import (
	"sync"
	"time"
)

// RateLimiter is a sliding-window limiter keyed by caller identity,
// used to slow down credential-stuffing against the login endpoint.
type RateLimiter struct {
	mu                sync.Mutex
	requestsPerMinute int
	attempts          map[string][]time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(rpm int) *RateLimiter {
	return &RateLimiter{
		requestsPerMinute: rpm,
		attempts:          make(map[string][]time.Time),
	}
}

// Allow reports whether another attempt for key fits in the current window
// and records it if so.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-time.Minute)

	// Drop attempts outside the window
	valid := r.attempts[key][:0]
	for _, t := range r.attempts[key] {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= r.requestsPerMinute {
		r.attempts[key] = valid
		return false
	}

	r.attempts[key] = append(valid, now)
	return true
}

// LoginLimiter guards the login endpoint (per client IP).
var LoginLimiter = NewRateLimiter(10)
