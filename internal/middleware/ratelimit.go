package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/myflycloudly/my-fly-cloudly/internal/config"
)

// RateLimit returns a fixed-window limiter over Redis, applied to
// the authentication endpoints to absorb credential stuffing and
// signup floods. The window is keyed per client IP and route. With a
// nil Redis client, a disabled config, or a Redis error mid-request
// the limiter fails open: availability beats strictness here.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			// Window arithmetic runs in milliseconds so sub-second
			// windows never zero the divisor.
			interval := cfg.Window.Milliseconds()
			if interval < 1 {
				interval = 1
			}
			window := time.Now().UnixMilli() / interval
			key := cfg.Prefix + ":" + ip + ":" + c.Request().Method + ":" + c.Path() +
				":" + strconv.FormatInt(window, 10)

			ctx := c.Request().Context()
			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if n == 1 {
				rdb.Expire(ctx, key, cfg.Window)
			}
			remaining := int64(cfg.Limit) - n
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(cfg.Limit) {
				retry := int(cfg.Window / time.Second)
				if retry < 1 {
					retry = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "Too many attempts. Please wait a few minutes and try again.",
				})
			}
			return next(c)
		}
	}
}
