package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w
}

func TestLoggingMiddleware_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggingMiddleware())

	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusOK)
	})

	w := perform(r, http.MethodGet, "/ping")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, seen, 8)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/provinces", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("preflight", func(t *testing.T) {
		w := perform(r, http.MethodOptions, "/provinces")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("simple request", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/provinces")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	})
}

func TestMemoryRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewMemoryRateLimiter(ctx, 2, time.Minute)
	rl.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		ok, err := rl.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := rl.Allow(ctx, "a")
	assert.False(t, ok, "third request in the window is rejected")

	ok, _ = rl.Allow(ctx, "b")
	assert.True(t, ok, "other keys have their own window")

	now = now.Add(time.Minute)
	ok, _ = rl.Allow(ctx, "a")
	assert.True(t, ok, "window resets")

	now = now.Add(2 * time.Minute)
	rl.sweep()
	assert.Empty(t, rl.attempts)
}

type fakeCounter struct {
	counts map[string]int64
	keys   []string
	err    error
}

func (f *fakeCounter) IncrWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	f.keys = append(f.keys, key)
	return f.counts[key], nil
}

func TestRedisRateLimiter(t *testing.T) {
	ctx := context.Background()
	counter := &fakeCounter{}
	rl := NewRedisRateLimiter(counter, 1, time.Minute)
	rl.now = func() time.Time { return time.Unix(125, 0) }

	ok, err := rl.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rl.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, "ratelimit:10.0.0.1:120", counter.keys[0])
}

func TestRateLimitMiddleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("rejects over the limit", func(t *testing.T) {
		r := gin.New()
		r.Use(RateLimitMiddleware(NewMemoryRateLimiter(ctx, 1, time.Hour)))
		r.GET("/provinces", func(c *gin.Context) { c.Status(http.StatusOK) })

		assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/provinces").Code)

		w := perform(r, http.MethodGet, "/provinces")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())
	})

	t.Run("limiter failure lets requests through", func(t *testing.T) {
		r := gin.New()
		r.Use(RateLimitMiddleware(NewRedisRateLimiter(&fakeCounter{err: errors.New("redis down")}, 1, time.Minute)))
		r.GET("/provinces", func(c *gin.Context) { c.Status(http.StatusOK) })

		assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/provinces").Code)
	})
}

func TestMetricsMiddleware(t *testing.T) {
	// Use a fresh registry for each test to avoid "duplicate registration" errors
	reg := prometheus.NewRegistry()
	m, err := NewMetricsMiddleware(reg)
	require.NoError(t, err)

	r := gin.New()
	r.Use(m.Handler())
	r.GET("/provinces/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET(MetricsPath, func(c *gin.Context) { c.Status(http.StatusOK) })

	perform(r, http.MethodGet, "/provinces/1")
	perform(r, http.MethodGet, "/provinces/2")
	perform(r, http.MethodGet, "/nowhere")
	perform(r, http.MethodGet, MetricsPath)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/provinces/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.requestCount.WithLabelValues("GET", MetricsPath, "200")))

	_, err = NewMetricsMiddleware(reg)
	assert.Error(t, err)
}
