package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const ctxRequestID = "request_id"

// RequestLog tags each request with an id (reusing X-Request-ID when the
// caller sent one) and logs it once it completes.
func RequestLog(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(ctxRequestID, rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			err := next(c)
			if err != nil {
				// Render now so the logged status is the one sent.
				c.Error(err)
			}
			res := c.Response()
			fields := []zap.Field{
				zap.String("request_id", rid),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", res.Status),
				zap.Int64("bytes", res.Size),
				zap.Duration("latency", time.Since(start)),
			}
			switch {
			case res.Status >= 500:
				log.Warn("request", fields...)
			case c.Path() == "/health":
				log.Debug("request", fields...)
			default:
				log.Info("request", fields...)
			}
			return nil
		}
	}
}

// RequestIDFrom returns the id assigned by RequestLog, or "".
func RequestIDFrom(c echo.Context) string {
	if v, ok := c.Get(ctxRequestID).(string); ok {
		return v
	}
	return ""
}
