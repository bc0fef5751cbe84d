package api

import (
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Enabled: true, AuthRequestsPerMin: 3})
	defer rl.Stop()

	key := "ip:127.0.0.1"
	for i := 0; i < 3; i++ {
		if !rl.Allow(key) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow(key) {
		t.Fatal("4th request should be denied")
	}
	if !rl.Allow("ip:10.0.0.1") {
		t.Fatal("other clients keep their own budget")
	}
}

func TestRateLimiter_WindowExpiry(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Enabled: true, AuthRequestsPerMin: 1})
	defer rl.Stop()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("k") {
		t.Fatal("second request in window should be denied")
	}

	now = now.Add(61 * time.Second)
	if !rl.Allow("k") {
		t.Fatal("request after window expiry should be allowed")
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Enabled: false, AuthRequestsPerMin: 1})
	defer rl.Stop()
	rl.Stop()

	for i := 0; i < 5; i++ {
		if !rl.Allow("k") {
			t.Fatal("disabled limiter must allow everything")
		}
	}
}
