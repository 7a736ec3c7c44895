// Package http provides the API HTTP server, middleware, and metrics server.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/allisson/analytics-relay/internal/httputil"
)

// webhookSecretHeader carries the shared secret on webhook requests.
const webhookSecretHeader = "X-Webhook-Secret"

const (
	// rateLimiterCleanupInterval is how often stale limiters are swept.
	rateLimiterCleanupInterval = 5 * time.Minute
	// rateLimiterStaleAge is how long a source can stay idle before its
	// limiter is evicted.
	rateLimiterStaleAge = time.Hour
)

// CustomLoggerMiddleware logs HTTP requests with the request id.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.String("request_id", requestid.Get(c)),
		)
	}
}

// NewWebhookAuthMiddleware verifies the webhook shared secret against its
// Argon2id hash. Returns nil when no hash is configured, disabling
// authentication.
func NewWebhookAuthMiddleware(secretHash string, logger *slog.Logger) gin.HandlerFunc {
	if secretHash == "" {
		logger.Warn("webhook authentication disabled - no secret hash configured")
		return nil
	}

	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return func(c *gin.Context) {
		secret := c.GetHeader(webhookSecretHeader)
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorResponse{
				Error:   "unauthorized",
				Message: "Authentication is required",
			})
			return
		}

		ok, err := hasher.Verify([]byte(secret), secretHash)
		if err != nil || !ok {
			logger.Warn("webhook authentication failed",
				slog.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorResponse{
				Error:   "unauthorized",
				Message: "Authentication is required",
			})
			return
		}

		c.Next()
	}
}

// rateLimiterStore holds per-source rate limiters with automatic cleanup.
type rateLimiterStore struct {
	limiters sync.Map // map[string]*rateLimiterEntry, keyed by client IP
	rps      float64
	burst    int
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// NewRateLimitMiddleware applies a per-source token bucket to webhook
// endpoints. Returns nil when rate limiting is disabled.
//
// Webhook callers are unauthenticated at this point in the chain, so the
// limiter key is the client IP. Idle sources are evicted periodically to
// keep the store bounded.
func NewRateLimitMiddleware(enabled bool, requestsPerSec float64, burst int) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	store := &rateLimiterStore{
		rps:   requestsPerSec,
		burst: burst,
	}

	go store.cleanupStale(context.Background(), rateLimiterCleanupInterval)

	return func(c *gin.Context) {
		if !store.getLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.ErrorResponse{
				Error:   "rate_limited",
				Message: "Too many requests",
			})
			return
		}

		c.Next()
	}
}

// getLimiter retrieves or creates a rate limiter for a source IP.
func (s *rateLimiterStore) getLimiter(clientIP string) *rate.Limiter {
	if val, ok := s.limiters.Load(clientIP); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: time.Now(),
	}

	s.limiters.Store(clientIP, entry)
	return entry.limiter
}

// evictStale removes limiters whose last access is before the threshold.
func (s *rateLimiterStore) evictStale(threshold time.Time) {
	s.limiters.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			s.limiters.Delete(key)
		}
		return true
	})
}

// cleanupStale periodically evicts idle limiters to prevent unbounded
// memory growth.
func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictStale(time.Now().Add(-rateLimiterStaleAge))
		}
	}
}
