package http

import (
	"errors"
	"net/http"
	"time"

	xutil "MarketPulse/pkg/util"

	"github.com/labstack/echo/v4"
)

// Now is the envelope clock.
var Now = time.Now

// Timestamp returns the current envelope timestamp in epoch milliseconds.
func Timestamp() int64 { return xutil.UnixMilli(Now()) }

// SuccessResponse writes {success, data, timestamp}.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, DataEnvelope{Success: true, Data: data, Timestamp: Timestamp()})
}

// ResultsResponse writes {success, results, timestamp}. A nil slice renders as [].
func ResultsResponse[T any](c echo.Context, results []T) error {
	if results == nil {
		results = []T{}
	}
	return c.JSON(http.StatusOK, ResultsEnvelope{Success: true, Results: results, Timestamp: Timestamp()})
}

// ErrorResponse writes {error, timestamp} with status.
func ErrorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorEnvelope{Error: message, Timestamp: Timestamp()})
}

// BadRequestResponse writes a 400 carrying validation details.
func BadRequestResponse(c echo.Context, details []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ErrorEnvelope{
		Error:     "invalid request",
		Details:   details,
		Timestamp: Timestamp(),
	})
}

// AppErrorResponse writes the status and message of an *AppError, or a 500.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponse(c, appErr.Status, appErr.Message)
	}
	return ErrorResponse(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// ErrorHandler renders errors returned by handlers and middleware in the envelope
// shape. observe, when non-nil, sees every 5xx before it is written.
func ErrorHandler(observe func(c echo.Context, err error)) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var appErr *AppError
		var he *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status, message = appErr.Status, appErr.Message
		case errors.As(err, &he):
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		}

		if status >= 500 && observe != nil {
			observe(c, err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = ErrorResponse(c, status, message)
	}
}
