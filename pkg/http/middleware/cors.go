package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
}

// CORS returns CORS middleware. Requests from origins outside the allow-list
// pass through without CORS headers; preflights from them are rejected.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			origin := req.Header.Get(echo.HeaderOrigin)
			header := c.Response().Header()
			header.Add(echo.HeaderVary, echo.HeaderOrigin)

			allowed, wildcard := originAllowed(cfg.AllowOrigins, origin)
			preflight := req.Method == http.MethodOptions && req.Header.Get(echo.HeaderAccessControlRequestMethod) != ""

			if origin == "" || !allowed {
				if preflight {
					return c.NoContent(http.StatusForbidden)
				}
				return next(c)
			}

			if wildcard && !cfg.AllowCredentials {
				header.Set(echo.HeaderAccessControlAllowOrigin, "*")
			} else {
				header.Set(echo.HeaderAccessControlAllowOrigin, origin)
			}
			if cfg.AllowCredentials {
				header.Set(echo.HeaderAccessControlAllowCredentials, "true")
			}

			if preflight {
				if allowMethods != "" {
					header.Set(echo.HeaderAccessControlAllowMethods, allowMethods)
				}
				if allowHeaders != "" {
					header.Set(echo.HeaderAccessControlAllowHeaders, allowHeaders)
				}
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}

func originAllowed(origins []string, origin string) (allowed, wildcard bool) {
	for _, o := range origins {
		if o == "*" {
			return true, true
		}
		if strings.EqualFold(strings.TrimRight(o, "/"), origin) {
			return true, false
		}
	}
	return false, false
}
