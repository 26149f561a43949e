package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// limiter tracks attempt timestamps per key (user id when authenticated,
// client IP otherwise) inside a sliding window. Entries older than the
// window are evicted on each touch.
type limiter struct {
	mu       sync.Mutex
	window   time.Duration
	max      int
	attempts map[string][]time.Time
}

func newLimiter(window time.Duration, max int) *limiter {
	return &limiter{
		window:   window,
		max:      max,
		attempts: make(map[string][]time.Time),
	}
}

// allow records an attempt for key and reports whether it fits the window.
// The second return is how long until the oldest attempt expires.
func (l *limiter) allow(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	windowStart := now.Add(-l.window)
	kept := l.attempts[key][:0]
	for _, t := range l.attempts[key] {
		if t.After(windowStart) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.max {
		l.attempts[key] = kept
		return false, kept[0].Add(l.window).Sub(now)
	}

	l.attempts[key] = append(kept, now)
	return true, 0
}

// SensitiveLimit throttles sensitive operations (login, password reset) per
// user or IP. Process-local state only; a multi-instance deployment needs a
// shared limiter instead.
func SensitiveLimit(window time.Duration, max int) gin.HandlerFunc {
	l := newLimiter(window, max)

	return func(c *gin.Context) {
		key := c.GetString("userID")
		if key == "" {
			key = c.ClientIP()
		}

		ok, retryAfter := l.allow(key, time.Now())
		if !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":       "RATE_LIMIT_EXCEEDED",
					"message":    "Too many attempts. Please try again later.",
					"retryAfter": int(retryAfter.Seconds()) + 1,
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
