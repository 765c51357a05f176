package http

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedRouter(middleware gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middleware)
	router.POST("/v1/passwords/verify", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"valid": true})
	})
	return router
}

func sendFrom(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/passwords/verify", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func countLimiters(s *ipRateLimiterStore) int {
	n := 0
	s.limiters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	router := newRateLimitedRouter(RateLimitMiddleware(10.0, 20, nil))

	for i := 0; i < 5; i++ {
		w := sendFrom(router, "192.0.2.1:1234")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddleware_BlocksRequestsExceedingLimit(t *testing.T) {
	router := newRateLimitedRouter(RateLimitMiddleware(0.5, 2, nil))

	for i := 0; i < 2; i++ {
		w := sendFrom(router, "192.0.2.1:1234")
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := sendFrom(router, "192.0.2.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")

	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retryAfter, 1)
}

func TestRateLimitMiddleware_IndependentPerIP(t *testing.T) {
	router := newRateLimitedRouter(RateLimitMiddleware(0.5, 1, nil))

	assert.Equal(t, http.StatusOK, sendFrom(router, "192.0.2.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, sendFrom(router, "192.0.2.1:1234").Code)

	// A different address has its own bucket.
	assert.Equal(t, http.StatusOK, sendFrom(router, "192.0.2.2:1234").Code)
}

func TestRateLimitMiddleware_ConcurrentRequests(t *testing.T) {
	router := newRateLimitedRouter(RateLimitMiddleware(0.001, 5, nil))

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sendFrom(router, "192.0.2.9:1234").Code == http.StatusOK {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, allowed)
}

func TestIPRateLimiterStore_SweepsIdleEntries(t *testing.T) {
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return current }
	store := newIPRateLimiterStore(1, 1, now)

	store.getLimiter("192.0.2.1")
	store.getLimiter("192.0.2.2")
	assert.Equal(t, 2, countLimiters(store))

	// Within the sweep interval nothing is removed.
	current = current.Add(rateLimiterSweepInterval - time.Second)
	store.getLimiter("192.0.2.2")
	assert.Equal(t, 2, countLimiters(store))

	// Past the idle timeout stale entries are dropped.
	current = current.Add(rateLimiterIdleTimeout + time.Second)
	store.getLimiter("192.0.2.3")
	assert.Equal(t, 1, countLimiters(store))

	_, ok := store.limiters.Load("192.0.2.3")
	assert.True(t, ok)
}
