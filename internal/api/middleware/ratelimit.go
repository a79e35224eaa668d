package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimiter applies a per-client-IP token bucket. It fronts the auth
// routes to slow credential stuffing; authenticated routes rely on the
// login throttle instead.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	clients  map[string]*clientLimiter
	lastSeen func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows ratePerSec sustained requests with the given burst
// per client IP.
func NewRateLimiter(ratePerSec float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(ratePerSec),
		burst:    burst,
		clients:  make(map[string]*clientLimiter),
		lastSeen: time.Now,
	}
}

// Middleware returns the echo middleware enforcing the limit.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.lastSeen()
	cl := rl.clients[ip]
	if cl == nil {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = now

	// Opportunistic cleanup keeps the map from growing without bound.
	for k, v := range rl.clients {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(rl.clients, k)
		}
	}

	return cl.limiter.Allow()
}
