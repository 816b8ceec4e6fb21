package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"gamecatalog/internal/cache"
	apperrors "gamecatalog/internal/errors"
	"gamecatalog/internal/metrics"
)

// Counter is the slice of the cache the rate limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

var _ Counter = (*cache.Client)(nil)

// RedisRateLimiterStore is a fixed-window echo RateLimiterStore shared by
// all instances through Redis. It allows requests when Redis is unavailable.
type RedisRateLimiterStore struct {
	counter Counter
	prefix  string
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewRedisRateLimiterStore allows limit requests per identifier per window.
func NewRedisRateLimiterStore(counter Counter, prefix string, limit int, window time.Duration) *RedisRateLimiterStore {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisRateLimiterStore{
		counter: counter,
		prefix:  prefix,
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow implements echo's RateLimiterStore.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	if s.limit <= 0 {
		return true, nil
	}
	bucket := s.now().Truncate(s.window).Unix()
	key := fmt.Sprintf("ratelimit:%s:%s:%d", s.prefix, identifier, bucket)

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	n, err := s.counter.Incr(ctx, key, s.window)
	if err != nil {
		return true, nil
	}
	return n <= int64(s.limit), nil
}

// RateLimit limits requests per client IP using store.
func RateLimit(store echomw.RateLimiterStore, m *metrics.Metrics) echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "unable to identify client",
				Code:  "FORBIDDEN",
			})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			m.RateLimited(c.Path())
			return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.ErrorResponse{
				Error: "too many requests",
				Code:  "RATE_LIMITED",
			})
		},
	})
}
