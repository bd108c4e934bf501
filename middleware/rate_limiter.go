// middleware/rate_limiter.go

package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/buildledger/backoffice/db"
	logger "github.com/buildledger/backoffice/logging"
)

// RateLimiter is the shared sliding-window limit kept in redis, keyed by client IP.
func RateLimiter(limit int, per time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		allowed, err := db.RateLimit(c.Request.Context(), key, limit, per)
		if err != nil {
			// Redis trouble must not take the API down.
			logger.Error("Rate limiting failed", zap.Error(err), zap.String("ip", key))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Duration", per.String())

		if !allowed {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", key),
				zap.Int("limit", limit),
				zap.Duration("per", per))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginLimiter is an in-process token bucket per client IP for credential endpoints.
type LoginLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

func NewLoginLimiter(perSecond float64, burst int) *LoginLimiter {
	return &LoginLimiter{rate: rate.Limit(perSecond), burst: burst}
}

func (l *LoginLimiter) limiter(key string) *rate.Limiter {
	v, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rate, l.burst))
	return v.(*rate.Limiter)
}

func (l *LoginLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

func (l *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !l.Allow(key) {
			logger.Warn("Login throttled", zap.String("ip", key))
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts"})
			c.Abort()
			return
		}
		c.Next()
	}
}
