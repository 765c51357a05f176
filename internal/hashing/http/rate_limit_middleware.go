package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	rateLimiterSweepInterval = 5 * time.Minute
	rateLimiterIdleTimeout   = time.Hour
)

// ipRateLimiterStore holds per-IP rate limiters. Idle entries are swept
// from the request path, so the store owns no goroutine.
type ipRateLimiterStore struct {
	limiters  sync.Map // map[string]*ipRateLimiterEntry (IP -> limiter)
	rps       float64
	burst     int
	now       func() time.Time
	sweepMu   sync.Mutex
	lastSweep time.Time
}

// ipRateLimiterEntry holds a rate limiter and last access time for cleanup.
type ipRateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// RateLimitMiddleware enforces per-IP rate limiting with a token bucket per
// client address (c.ClientIP()). It guards the verify endpoint against online
// guessing; the verification wait already slows each attempt.
//
// Returns:
//   - 429 Too Many Requests: Rate limit exceeded (includes Retry-After header)
//   - Continues: Request allowed within rate limit
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	return newIPRateLimiterStore(rps, burst, time.Now).middleware(logger)
}

func newIPRateLimiterStore(rps float64, burst int, now func() time.Time) *ipRateLimiterStore {
	return &ipRateLimiterStore{
		rps:       rps,
		burst:     burst,
		now:       now,
		lastSweep: now(),
	}
}

func (s *ipRateLimiterStore) middleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := s.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(math.Ceil(reservation.Delay().Seconds()))
			reservation.Cancel()
			if retryAfter < 1 {
				retryAfter = 1
			}

			if logger != nil {
				logger.Debug("rate limit exceeded",
					slog.String("client_ip", clientIP),
					slog.Int("retry_after", retryAfter))
			}

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests from this IP. Please retry after the specified delay.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getLimiter retrieves or creates a rate limiter for an IP address.
func (s *ipRateLimiterStore) getLimiter(ip string) *rate.Limiter {
	now := s.now()
	s.maybeSweep(now)

	if val, ok := s.limiters.Load(ip); ok {
		entry := val.(*ipRateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &ipRateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	}
	actual, _ := s.limiters.LoadOrStore(ip, entry)
	return actual.(*ipRateLimiterEntry).limiter
}

// maybeSweep removes limiters idle for longer than rateLimiterIdleTimeout,
// at most once per rateLimiterSweepInterval.
func (s *ipRateLimiterStore) maybeSweep(now time.Time) {
	s.sweepMu.Lock()
	if now.Sub(s.lastSweep) < rateLimiterSweepInterval {
		s.sweepMu.Unlock()
		return
	}
	s.lastSweep = now
	s.sweepMu.Unlock()

	threshold := now.Add(-rateLimiterIdleTimeout)
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*ipRateLimiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			s.limiters.Delete(key)
		}
		return true
	})
}
