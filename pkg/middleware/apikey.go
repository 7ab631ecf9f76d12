package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const HeaderAPIKey = "X-API-Key"

// APIKey guards the API with a shared key sent as X-API-Key or as a Bearer
// token. An empty key disables the check for local development.
func APIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" {
				return next(c)
			}
			got := c.Request().Header.Get(HeaderAPIKey)
			if got == "" {
				got = strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing or invalid api key"})
			}
			return next(c)
		}
	}
}
