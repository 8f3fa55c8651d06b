package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter counts requests per user in fixed Redis windows. Without
// Redis, or when Redis fails, it falls back to an in-process token bucket
// per user.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time

	mu        sync.Mutex
	local     map[string]*localBucket
	lastSweep time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a new rate limiter instance. redisClient may be nil.
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	if config.Limit < 1 {
		config.Limit = 1
	}
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		now:    time.Now,
		local:  make(map[string]*localBucket),
	}
}

// NewPantryWriteRateLimiter limits pantry mutations to perHour per user.
func NewPantryWriteRateLimiter(redisClient *redis.Client, perHour int) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     perHour,
		KeyPrefix: "rate_limit:pantry_write",
	})
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		userIDStr := fmt.Sprintf("%v", userID)

		var (
			allowed   bool
			remaining int
			resetTime time.Time
			err       error
		)
		if rl.redis != nil {
			allowed, remaining, resetTime, err = rl.IsAllowed(c.Request.Context(), userIDStr)
			if err != nil {
				log.Printf("[RateLimiter] Redis check failed, using local limiter: %v", err)
			}
		}
		if rl.redis == nil || err != nil {
			allowed, remaining, resetTime = rl.allowLocal(userIDStr)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":                "rate limit exceeded",
				"message":              fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window),
				"rate_limit_remaining": remaining,
				"rate_limit_reset":     resetTime.Unix(),
				"retry_after":          int(resetTime.Sub(rl.now()).Seconds()),
			})
			return
		}

		c.Next()
	}
}

// IsAllowed checks if a request from the given user is allowed
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, userID string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, userID, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}

// allowLocal spends one token from the user's bucket. The bucket holds
// Limit tokens and refills at Limit per Window.
func (rl *RateLimiter) allowLocal(userID string) (bool, int, time.Time) {
	now := rl.now()

	rl.mu.Lock()
	if now.Sub(rl.lastSweep) >= rl.config.Window {
		rl.sweepLocal(now)
	}
	b, ok := rl.local[userID]
	if !ok {
		every := rl.config.Window / time.Duration(rl.config.Limit)
		b = &localBucket{limiter: rate.NewLimiter(rate.Every(every), rl.config.Limit)}
		rl.local[userID] = b
	}
	b.lastSeen = now
	lim := b.limiter
	rl.mu.Unlock()

	allowed := lim.AllowN(now, 1)
	remaining := int(lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	missing := float64(rl.config.Limit - remaining)
	reset := now.Add(time.Duration(missing / float64(lim.Limit()) * float64(time.Second)))
	return allowed, remaining, reset
}

// sweepLocal drops buckets untouched for a whole window. Those have refilled
// completely, so a fresh bucket behaves the same. Callers hold rl.mu.
func (rl *RateLimiter) sweepLocal(now time.Time) {
	for userID, b := range rl.local {
		if now.Sub(b.lastSeen) >= rl.config.Window {
			delete(rl.local, userID)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) localBuckets() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.local)
}
