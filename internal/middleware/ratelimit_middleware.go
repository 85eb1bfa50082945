package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/wilayah_api/internal/utils"
)

// RateLimiter decides whether a client may make another request.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryRateLimiter is a fixed-window limiter kept in process memory.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	attempts map[string]*attemptInfo
	now      func() time.Time
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

// NewMemoryRateLimiter allows limit requests per key per window. Expired
// entries are swept until ctx is done.
func NewMemoryRateLimiter(ctx context.Context, limit int, window time.Duration) *MemoryRateLimiter {
	rl := &MemoryRateLimiter{
		limit:    limit,
		window:   window,
		attempts: make(map[string]*attemptInfo),
		now:      time.Now,
	}
	go rl.cleanup(ctx)
	return rl
}

// Allow checks if key can make another request
func (r *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	info, exists := r.attempts[key]
	if !exists {
		r.attempts[key] = &attemptInfo{count: 1, firstAt: now}
		return true, nil
	}

	// Reset if window expired
	if now.Sub(info.firstAt) >= r.window {
		r.attempts[key] = &attemptInfo{count: 1, firstAt: now}
		return true, nil
	}

	if info.count >= r.limit {
		return false, nil
	}
	info.count++
	return true, nil
}

func (r *MemoryRateLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *MemoryRateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for key, info := range r.attempts {
		if now.Sub(info.firstAt) >= r.window {
			delete(r.attempts, key)
		}
	}
}

// WindowCounter increments a counter that expires after ttl.
type WindowCounter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RedisRateLimiter is a fixed-window limiter shared by every instance that
// talks to the same Redis.
type RedisRateLimiter struct {
	counter WindowCounter
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewRedisRateLimiter allows limit requests per key per window.
func NewRedisRateLimiter(counter WindowCounter, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{counter: counter, limit: limit, window: window, now: time.Now}
}

// Allow increments the counter for the current window of key.
func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	start := r.now().Truncate(r.window).Unix()
	n, err := r.counter.IncrWithTTL(ctx, fmt.Sprintf("ratelimit:%s:%d", key, start), r.window)
	if err != nil {
		return false, err
	}
	return n <= int64(r.limit), nil
}

// RateLimitMiddleware rejects clients that exceed the limiter with 429. A
// limiter failure lets the request through.
func RateLimitMiddleware(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn().Err(err).Str("request_id", utils.GetRequestID(c)).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			utils.Error(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
