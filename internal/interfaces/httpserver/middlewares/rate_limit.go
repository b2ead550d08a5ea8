package middlewares

import (
	"net"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"moodcanvas-server/internal/utils/platformerrors"
)

// RateLimiter keeps one token bucket per client IP. Idle buckets expire.
type RateLimiter struct {
	limiters *gocache.Cache
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows perHour requests per client per hour, all of which may
// arrive in a burst.
func NewRateLimiter(perHour int) *RateLimiter {
	if perHour <= 0 {
		return &RateLimiter{}
	}
	return &RateLimiter{
		limiters: gocache.New(2*time.Hour, 10*time.Minute),
		limit:    rate.Every(time.Hour / time.Duration(perHour)),
		burst:    perHour,
	}
}

// Middleware rejects requests beyond the budget with 429.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.limiters == nil {
			c.Next()
			return
		}

		limiter := r.limiterFor(clientIP(c.ClientIP()))
		if !limiter.Allow() {
			retryAfter := time.Duration(float64(time.Second) / float64(r.limit))
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			platformerrors.WriteTooManyRequests(c, "Too many requests, please try again later")
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) limiterFor(key string) *rate.Limiter {
	if cached, ok := r.limiters.Get(key); ok {
		r.limiters.SetDefault(key, cached)
		return cached.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(r.limit, r.burst)
	if err := r.limiters.Add(key, limiter, gocache.DefaultExpiration); err != nil {
		// another request created it first
		if cached, ok := r.limiters.Get(key); ok {
			return cached.(*rate.Limiter)
		}
	}
	return limiter
}

// Normalize IPv6-mapped IPv4 etc.
func clientIP(raw string) string {
	if raw == "" {
		return "anonymous"
	}
	if ip := net.ParseIP(raw); ip != nil {
		return ip.String()
	}
	return raw
}
