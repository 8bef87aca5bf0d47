package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RateLimiter struct {
	limit    int
	interval time.Duration
	ips      map[string][]time.Time
	mu       sync.Mutex
}

func NewRateLimiter(limit int, intervalSeconds int) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: time.Duration(intervalSeconds) * time.Second,
		ips:      make(map[string][]time.Time),
	}
}

// RateLimit allows at most `limit` requests per IP per interval.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		now := time.Now()
		windowStart := now.Add(-rl.interval)

		recent := rl.ips[ip][:0]
		for _, t := range rl.ips[ip] {
			if t.After(windowStart) {
				recent = append(recent, t)
			}
		}

		if len(recent) >= rl.limit {
			rl.ips[ip] = recent
			rl.mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, slow down",
			})
			c.Abort()
			return
		}

		rl.ips[ip] = append(recent, now)
		rl.mu.Unlock()

		c.Next()
	}
}

// NewStrictRateLimiter protects login/register: 5 attempts per minute.
func NewStrictRateLimiter() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(1*time.Minute), 5)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many attempts, try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
