package api

import (
	"sync"
	"time"
)

// RateLimitConfig bounds how often one client may call register and login
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active
	Enabled bool
	// AuthRequestsPerMin is the per-client budget for register and login
	AuthRequestsPerMin int
}

// DefaultRateLimitConfig returns the default auth budget
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:            true,
		AuthRequestsPerMin: 10,
	}
}

type window struct {
	count     int
	expiresAt time.Time
}

// RateLimiter is a fixed one-minute window counter keyed by client
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	config  RateLimitConfig
	now     func() time.Time
	stopCh  chan struct{}
	stop    sync.Once
}

// NewRateLimiter creates a limiter and starts its cleanup goroutine
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		config:  cfg,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow records a request for key and reports whether it is within budget
func (rl *RateLimiter) Allow(key string) bool {
	limit := rl.config.AuthRequestsPerMin
	if !rl.config.Enabled || limit <= 0 {
		return true
	}

	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || now.After(w.expiresAt) {
		rl.windows[key] = &window{count: 1, expiresAt: now.Add(time.Minute)}
		return true
	}
	if w.count >= limit {
		return false
	}
	w.count++
	return true
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := rl.now()
			rl.mu.Lock()
			for key, w := range rl.windows {
				if now.After(w.expiresAt) {
					delete(rl.windows, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stop.Do(func() { close(rl.stopCh) })
}
