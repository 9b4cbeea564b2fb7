package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/lukafrizz/content-api/logger"
	"github.com/lukafrizz/content-api/web/entity"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig configures fixed-window rate limiting.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(c *gin.Context) string
}

// DefaultRateLimitConfig allows 100 requests per client address per 15 minutes.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Requests: 100,
		Window:   15 * time.Minute,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

// RateLimitMiddleware enforces the configured budget with an in-process
// window map. State is per-instance; that is acceptable for a single-node
// deployment.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		windows = make(map[string]*rateWindow)
	)

	return func(c *gin.Context) {
		key := config.KeyFunc(c)
		now := time.Now()

		mu.Lock()
		w, ok := windows[key]
		if !ok || now.After(w.resetAt) {
			w = &rateWindow{resetAt: now.Add(config.Window)}
			windows[key] = w
			// Opportunistic cleanup keeps the map from growing unbounded.
			if len(windows) > 10000 {
				for k, v := range windows {
					if now.After(v.resetAt) {
						delete(windows, k)
					}
				}
			}
		}
		w.count++
		count := w.count
		resetAt := w.resetAt
		mu.Unlock()

		if count > config.Requests {
			logger.Warningf("rate limit exceeded for %s on %s (count: %d)", key, c.Request.URL.Path, count)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, entity.Msg{
				Success: false,
				Message: "Too many requests from this address, try again later.",
			})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Requests-count))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
		c.Next()
	}
}
