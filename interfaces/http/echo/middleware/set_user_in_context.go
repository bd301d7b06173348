package middleware

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/net/context"

	"github.com/andreazagoit/upcominghub-native/models"
)

// SetUserInContext resolves the access token already extracted by
// SetTokenInContext to a user and stores the result on the request context.
// Requests with no resolvable user pass through; handlers decide whether to
// reject.
func SetUserInContext(lookup func(token string) *models.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, _ := c.Get(TokenKey).(string)
			if token == "" {
				return next(c)
			}

			user := lookup(token)
			if user == nil {
				return next(c)
			}

			c.Set(UserKey, user)
			ctx := context.WithValue(c.Request().Context(), UserKey, user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
