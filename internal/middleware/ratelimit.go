package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter throttles callers over a sliding window. The provider-backed
// endpoints (search, imports, routing) sit behind it so one user cannot
// exhaust the upstream quota.
type RateLimiter struct {
	mu      sync.Mutex
	history map[string][]time.Time
	limit   int
	window  time.Duration
}

// NewRateLimiter creates a limiter allowing limit requests per caller per
// window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		history: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
	}
	go rl.evictStale()
	return rl
}

// evictStale drops callers whose whole history has aged out, so the map
// does not grow with every caller ever seen
func (rl *RateLimiter) evictStale() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for caller, times := range rl.history {
			recent := withinWindow(times, now, rl.window)
			if len(recent) == 0 {
				delete(rl.history, caller)
			} else {
				rl.history[caller] = recent
			}
		}
		rl.mu.Unlock()
	}
}

// Allow records a request for the caller and reports whether it fits the
// window
func (rl *RateLimiter) Allow(caller string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	recent := withinWindow(rl.history[caller], now, rl.window)
	if len(recent) >= rl.limit {
		rl.history[caller] = recent
		return false
	}
	rl.history[caller] = append(recent, now)
	return true
}

func withinWindow(times []time.Time, now time.Time, window time.Duration) []time.Time {
	var recent []time.Time
	for _, t := range times {
		if now.Sub(t) < window {
			recent = append(recent, t)
		}
	}
	return recent
}

// RateLimit limits requests per caller. Authenticated requests are keyed
// by username so a user's quota follows them across hosts; anything else
// falls back to the client IP.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(limit, window)

	return func(c *gin.Context) {
		caller := Username(c)
		if caller == "" {
			caller = c.ClientIP()
		}

		if !limiter.Allow(caller) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
