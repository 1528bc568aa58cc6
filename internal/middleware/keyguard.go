package middleware

import (
	"net/http"
	"strings"

	xhttp "MarketPulse/pkg/http"

	"github.com/labstack/echo/v4"
)

// KeyGuard answers every request under prefix with 500 while upstream API
// keys are missing. missing is evaluated per request.
func KeyGuard(prefix string, missing func() []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.HasPrefix(c.Request().URL.Path, prefix) {
				return next(c)
			}
			if keys := missing(); len(keys) > 0 {
				return xhttp.ErrorResponse(c, http.StatusInternalServerError, "Missing API keys: "+strings.Join(keys, ", "))
			}
			return next(c)
		}
	}
}
