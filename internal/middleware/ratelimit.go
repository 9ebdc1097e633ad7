package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockaigent/internal/domain/dto"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// In-memory store for rate limiting. Every cache miss can fan out to the
// upstream providers, so the limiter also shields Stooq and NBP.
// NOTE: per-process only; multi-instance deployments need a shared store.
var (
	clients         = make(map[string]*client)
	window          = time.Minute
	limit           = 120
	lastSweep       time.Time
	rateLimiterLock sync.Mutex
)

// SetRateLimit changes the number of requests allowed per client and window.
// A non-positive perWindow disables limiting.
func SetRateLimit(perWindow int, w time.Duration) {
	rateLimiterLock.Lock()
	defer rateLimiterLock.Unlock()
	limit = perWindow
	if w > 0 {
		window = w
	}
	clients = make(map[string]*client)
	lastSweep = time.Time{}
}

// sweepExpired drops clients whose window has ended, at most once per
// window. Callers must hold rateLimiterLock.
func sweepExpired(now time.Time) {
	if now.Sub(lastSweep) < window {
		return
	}
	for ip, cl := range clients {
		if now.Sub(cl.windowStart) > window {
			delete(clients, ip)
		}
	}
	lastSweep = now
}

// RateLimiter limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to `limit` requests per fixed `window` (default: 120 per minute).
//   - Identifies clients by their IP address.
//   - Forgets clients whose window has expired, so idle IPs do not accumulate.
//   - If the limit is exceeded, returns HTTP 429 Too Many Requests.
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{"error": "rate limit exceeded", ...}
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rateLimiterLock.Lock()
		if limit <= 0 {
			rateLimiterLock.Unlock()
			c.Next()
			return
		}
		sweepExpired(now)
		cl, ok := clients[ip]
		if !ok || now.Sub(cl.windowStart) > window {
			cl = &client{windowStart: now}
			clients[ip] = cl
		}
		cl.count++
		exceeded := cl.count > limit
		rateLimiterLock.Unlock()

		if exceeded {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}

		c.Next()
	}
}
