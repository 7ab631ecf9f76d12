package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"farmhub/pkg/record"
)

// StatusFor maps the record error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, record.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, record.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, record.ErrPartialFailure), errors.Is(err, record.ErrRequestFailed):
		return http.StatusBadGateway
	case errors.Is(err, record.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders every handler error as {"error": msg}, with field
// errors and partial-failure counts attached when present.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := StatusFor(err)
		body := echo.Map{"error": err.Error()}

		var he *echo.HTTPError
		var fe record.FieldErrors
		var pf *record.PartialFailureError
		switch {
		case errors.As(err, &he):
			body["error"] = http.StatusText(he.Code)
			if msg, ok := he.Message.(string); ok {
				body["error"] = msg
			}
		case errors.As(err, &fe):
			body["fields"] = fe
		case errors.As(err, &pf):
			body["failed"] = pf.Failed
			body["total"] = pf.Total
		}
		if status >= 500 {
			log.Error("request failed",
				zap.String("request_id", RequestIDFrom(c)),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err))
			if status == http.StatusInternalServerError {
				body["error"] = "internal error"
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}
