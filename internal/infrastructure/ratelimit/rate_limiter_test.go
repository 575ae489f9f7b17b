package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustsAndReportsWait(t *testing.T) {
	bucket := NewTokenBucket(2, 2, time.Minute)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)
	allowed, _ = bucket.Allow()
	assert.True(t, allowed)

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestRateLimiterIsolatesUsersAndActions(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("alice", "create_chat")
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow("alice", "create_chat")
	assert.False(t, allowed)

	// Another user and another action are unaffected.
	allowed, _ = limiter.Allow("bob", "create_chat")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("alice", "send_message")
	assert.True(t, allowed)
}
