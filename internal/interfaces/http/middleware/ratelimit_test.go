package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("fills and closes a window", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("10.0.0.1"), "request %d", i+1)
		}
		assert.False(t, limiter.Allow("10.0.0.1"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute)

		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))
		assert.True(t, limiter.Allow("10.0.0.2"))
	})

	t.Run("a fresh window resets the budget", func(t *testing.T) {
		limiter := NewRateLimiter(1, 30*time.Millisecond)

		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))

		time.Sleep(40 * time.Millisecond)
		assert.True(t, limiter.Allow("10.0.0.1"))
	})

	t.Run("counts exactly under concurrency", func(t *testing.T) {
		limiter := NewRateLimiter(100, time.Minute)

		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0
		for i := 0; i < 150; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("shared") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 100, allowed)
	})
}

func TestRateLimiter_Remaining(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)

	assert.Equal(t, 5, limiter.Remaining("10.0.0.9"))
	limiter.Allow("10.0.0.9")
	limiter.Allow("10.0.0.9")
	assert.Equal(t, 3, limiter.Remaining("10.0.0.9"))
}

func TestRateLimitMiddleware(t *testing.T) {
	limitedEngine := func(limiter *RateLimiter) *gin.Engine {
		engine := gin.New()
		engine.Use(RateLimit(limiter))
		engine.POST("/api/v1/sync", func(c *gin.Context) { c.Status(http.StatusAccepted) })
		return engine
	}

	t.Run("serves within the budget and reports it", func(t *testing.T) {
		engine := limitedEngine(NewRateLimiter(3, time.Minute))

		w := doRequest(engine, http.MethodPost, "/api/v1/sync", "")

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("responds 429 past the budget", func(t *testing.T) {
		engine := limitedEngine(NewRateLimiter(2, time.Minute))

		doRequest(engine, http.MethodPost, "/api/v1/sync", "")
		doRequest(engine, http.MethodPost, "/api/v1/sync", "")
		w := doRequest(engine, http.MethodPost, "/api/v1/sync", "")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
	})
}

func TestRateLimitByKey(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	engine := gin.New()
	engine.Use(RateLimitByKey(limiter, func(c *gin.Context) string {
		return c.GetHeader("X-API-Token")
	}))
	engine.GET("/api/v1/backups", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/backups", nil)
		req.Header.Set("X-API-Token", token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("token-a"))
	assert.Equal(t, http.StatusTooManyRequests, send("token-a"))
	assert.Equal(t, http.StatusOK, send("token-b"), "other tokens keep their own budget")
}
