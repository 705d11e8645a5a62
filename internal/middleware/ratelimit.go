// ratelimit.go implements a per-IP rate limiter for the auth form endpoints
// using a fixed window counter in Redis (INCR + EXPIRE). Counters live in
// Redis rather than process memory so limits hold across restarts and
// multiple instances.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// ratelimitKeyPrefix namespaces rate limit counters in Redis.
const ratelimitKeyPrefix = "ratelimit:"

// RateLimit returns middleware that limits requests per IP to maxRequests
// within the given window duration. Returns 429 when exceeded.
//
// Counters are keyed by path + client IP. The window starts on the first
// request and expires with the key, so a client that backs off gets a
// fresh allowance after the window lapses.
func RateLimit(rdb *redis.Client, maxRequests int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("%s%s:%s", ratelimitKeyPrefix, c.Request().URL.Path, c.RealIP())

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis being down must not lock users out of signing in.
				slog.Warn("rate limiter unavailable, allowing request",
					slog.String("key", key),
					slog.Any("error", err),
				)
				return next(c)
			}

			if count == 1 {
				if err := rdb.Expire(ctx, key, window).Err(); err != nil {
					slog.Warn("failed to set rate limit window",
						slog.String("key", key),
						slog.Any("error", err),
					)
				}
			}

			if count > int64(maxRequests) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error":   "Too Many Requests",
					"message": "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.",
				})
			}

			return next(c)
		}
	}
}
