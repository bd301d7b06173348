package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/net/context"
)

// SetTokenInContext extracts the bearer access token and the refresh side header
// from the request and places both on the echo context and the request context,
// where handlers read them back through utils/context.
func SetTokenInContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Attempt to get the token from the request header first
			token := c.Request().Header.Get(Authorization)

			// If not present, attempt to get it from the cookie
			if token == "" {
				cookie, err := c.Cookie(Authorization)
				if err != nil {
					if err.Error() != "http: named cookie not present" {
						log.Errorf("Error retrieving authorization cookie: %v", err)
					}
				} else {
					token = cookie.Value
				}
			}

			token = strings.TrimPrefix(token, "Bearer ")
			refresh := c.Request().Header.Get(RefreshTokenHeader)

			c.Set(TokenKey, token)
			c.Set(RefreshTokenKey, refresh)

			ctx := context.WithValue(c.Request().Context(), TokenKey, token)
			ctx = context.WithValue(ctx, RefreshTokenKey, refresh)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
