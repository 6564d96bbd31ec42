package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/session"
	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter manages rate limiters for each IP
type IPRateLimiter struct {
	ips   map[string]*rateLimiterEntry
	mu    sync.RWMutex
	r     rate.Limit
	burst int
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter creates a new IP-based rate limiter
// r = requests per second, burst = max burst size
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	rl := &IPRateLimiter{
		ips:   make(map[string]*rateLimiterEntry),
		r:     r,
		burst: burst,
	}

	// Cleanup old entries every minute
	go rl.cleanup()

	return rl
}

func (rl *IPRateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, entry := range rl.ips {
			if time.Since(entry.lastSeen) > 3*time.Minute {
				delete(rl.ips, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// GetLimiter returns the rate limiter for the given IP
func (rl *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.ips[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.r, rl.burst)
		rl.ips[ip] = &rateLimiterEntry{
			limiter:  limiter,
			lastSeen: time.Now(),
		}
		return limiter
	}

	entry.lastSeen = time.Now()
	return entry.limiter
}

// Pre-configured rate limiters for different endpoints
var (
	// Auth endpoints: 20 requests per minute
	AuthLimiter = NewIPRateLimiter(rate.Limit(20.0/60.0), 10)

	// General API: 600 requests per minute (10/sec)
	GeneralLimiter = NewIPRateLimiter(rate.Limit(10.0), 50)

	// Solution submission: 20 per minute
	SubmitLimiter = NewIPRateLimiter(rate.Limit(20.0/60.0), 5)

	// AI review fallback when Redis is down: 6 per minute
	ReviewLimiter = NewIPRateLimiter(rate.Limit(6.0/60.0), 3)
)

// ReviewQuota is the per-user AI review allowance.
const (
	ReviewQuota       = 30
	ReviewQuotaWindow = time.Hour
)

func tooManyRequests(c *gin.Context) {
	logger.Warn().
		Str("ip", c.ClientIP()).
		Str("path", c.Request.URL.Path).
		Msg("Rate limit exceeded")

	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":   "Too many requests",
		"message": "Rate limit exceeded. Please slow down.",
	})
	c.Abort()
}

// RateLimitMiddleware creates a rate limiting middleware with a custom limiter
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}

// AuthRateLimit is a convenience wrapper for auth endpoints
func AuthRateLimit() gin.HandlerFunc {
	return RateLimitMiddleware(AuthLimiter)
}

// GeneralRateLimit is for general API endpoints
func GeneralRateLimit() gin.HandlerFunc {
	return RateLimitMiddleware(GeneralLimiter)
}

// SubmitRateLimit is for solution submission endpoints
func SubmitRateLimit() gin.HandlerFunc {
	return RateLimitMiddleware(SubmitLimiter)
}

// ReviewRateLimit meters AI reviews per user in Redis, so the quota holds
// across server instances. Without Redis it falls back to a per-IP limiter.
func ReviewRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session.From(c)
		if s.Authenticated() {
			allowed, err := database.CheckRateLimit("review:"+s.UserID, ReviewQuota, ReviewQuotaWindow)
			if err == nil {
				if !allowed {
					tooManyRequests(c)
					return
				}
				c.Next()
				return
			}
		}
		if !ReviewLimiter.GetLimiter(c.ClientIP()).Allow() {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}
