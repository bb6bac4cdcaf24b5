package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowsUpToLimit(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(3)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"), "attempt %d should be allowed", i+1)
	}
	assert.False(t, limiter.Allow("10.0.0.1"), "attempt over the limit should be rejected")
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(1)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"), "a different key has its own window")
}
