package context

import (
	"github.com/andreazagoit/upcominghub-native/models"
	"golang.org/x/net/context"
)

// GetUserFromContext returns the authenticated user resolved by the identity
// server's session lookup, or nil when the request carries no valid session.
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value("requestUser").(*models.User)
	return user
}
