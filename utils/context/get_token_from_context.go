package context

import (
	"context"
)

// GetTokenFromContext returns the bearer access token placed on the request
// context by the HTTP middleware, or an empty string.
func GetTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value("requestToken").(string)
	return token
}

// GetRefreshTokenFromContext returns the refresh token forwarded in the side
// header, or an empty string.
func GetRefreshTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value("requestRefreshToken").(string)
	return token
}
