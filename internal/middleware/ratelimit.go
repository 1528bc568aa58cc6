package middleware

import (
	"math"
	"strconv"
	"strings"

	"MarketPulse/internal/service/ratelimit"
	xhttp "MarketPulse/pkg/http"

	"github.com/labstack/echo/v4"
)

// RateLimit throttles requests under prefix per client address.
func RateLimit(prefix string, limiter *ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.HasPrefix(c.Request().URL.Path, prefix) {
				return next(c)
			}
			key := c.RealIP()
			if limiter.Allow(key) {
				return next(c)
			}
			wait := limiter.RetryAfter(key)
			c.Response().Header().Set("Retry-After", strconv.Itoa(max(1, int(math.Ceil(wait.Seconds())))))
			return xhttp.TooManyRequestsError("Too many requests")
		}
	}
}
